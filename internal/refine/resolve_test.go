package refine

import (
	"testing"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"go.uber.org/zap"
)

func relWithTypes(e1Name string, e1Type domain.EntityType, e2Name string, e2Type domain.EntityType) domain.RefinedRelation {
	return domain.RefinedRelation{
		RelationType: domain.RelationAffect,
		Entity1Type:  e1Type,
		Entity1Name:  e1Name,
		Entity2Type:  e2Type,
		Entity2Name:  e2Name,
	}
}

func TestResolve_MajorityWins(t *testing.T) {
	tr := NewTypeResolver(zap.NewNop())

	// "drusen" asserted as test 5 times, disease 2 times.
	rels := []domain.RefinedRelation{}
	for i := 0; i < 5; i++ {
		rels = append(rels, relWithTypes("drusen", domain.EntityTest, "retina", domain.EntityBodyPart))
	}
	for i := 0; i < 2; i++ {
		rels = append(rels, relWithTypes("drusen", domain.EntityDisease, "macula", domain.EntityBodyPart))
	}

	resolved := tr.Resolve(rels)
	for i, rel := range resolved {
		if rel.Entity1Type != domain.EntityTest {
			t.Errorf("relation %d: expected count to win over priority, got %q", i, rel.Entity1Type)
		}
	}
}

func TestResolve_TieBreaksByPriority(t *testing.T) {
	tr := NewTypeResolver(zap.NewNop())

	// "drusen" asserted as disease 3 times and test 3 times: disease wins the tie.
	rels := []domain.RefinedRelation{}
	for i := 0; i < 3; i++ {
		rels = append(rels, relWithTypes("drusen", domain.EntityDisease, "retina", domain.EntityBodyPart))
		rels = append(rels, relWithTypes("drusen", domain.EntityTest, "macula", domain.EntityBodyPart))
	}

	resolved := tr.Resolve(rels)
	for i, rel := range resolved {
		if rel.Entity1Type != domain.EntityDisease {
			t.Errorf("relation %d: expected disease by priority tie-break, got %q", i, rel.Entity1Type)
		}
	}
}

func TestResolve_RewritesBothSides(t *testing.T) {
	tr := NewTypeResolver(zap.NewNop())

	rels := []domain.RefinedRelation{
		relWithTypes("amd", domain.EntityDisease, "smoking", domain.EntityRiskFactor),
		relWithTypes("smoking", domain.EntityComorbidity, "amd", domain.EntityDisease),
		relWithTypes("smoking", domain.EntityRiskFactor, "retina", domain.EntityBodyPart),
	}

	resolved := tr.Resolve(rels)
	// smoking: risk_factor 2, comorbidity 1 -> risk_factor everywhere.
	if resolved[0].Entity2Type != domain.EntityRiskFactor {
		t.Errorf("object side not rewritten: %q", resolved[0].Entity2Type)
	}
	if resolved[1].Entity1Type != domain.EntityRiskFactor {
		t.Errorf("subject side not rewritten: %q", resolved[1].Entity1Type)
	}
}

func TestResolve_UnambiguousUntouched(t *testing.T) {
	tr := NewTypeResolver(zap.NewNop())

	rels := []domain.RefinedRelation{
		relWithTypes("amd", domain.EntityDisease, "retina", domain.EntityBodyPart),
	}
	resolved := tr.Resolve(rels)
	if resolved[0].Entity1Type != domain.EntityDisease || resolved[0].Entity2Type != domain.EntityBodyPart {
		t.Error("unambiguous types must be left untouched")
	}
}

func TestResolve_FixedPoint(t *testing.T) {
	tr := NewTypeResolver(zap.NewNop())

	rels := []domain.RefinedRelation{
		relWithTypes("drusen", domain.EntityDisease, "retina", domain.EntityBodyPart),
		relWithTypes("drusen", domain.EntityBiomarker, "macula", domain.EntityBodyPart),
		relWithTypes("drusen", domain.EntityBiomarker, "eye", domain.EntityBodyPart),
	}

	once := tr.Resolve(rels)
	snapshot := make([]domain.RefinedRelation, len(once))
	copy(snapshot, once)

	twice := tr.Resolve(once)
	for i := range snapshot {
		if twice[i] != snapshot[i] {
			t.Errorf("relation %d changed on second resolution: %+v vs %+v", i, snapshot[i], twice[i])
		}
	}
}
