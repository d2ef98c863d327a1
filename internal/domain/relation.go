package domain

import "strings"

type RelationType string

const (
	RelationCause     RelationType = "cause"
	RelationTreat     RelationType = "treat"
	RelationPresent   RelationType = "present"
	RelationDiagnose  RelationType = "diagnose"
	RelationAggravate RelationType = "aggravate"
	RelationPrevent   RelationType = "prevent"
	RelationImprove   RelationType = "improve"
	RelationAffect    RelationType = "affect"
)

func ValidRelationType(r string) bool {
	switch RelationType(r) {
	case RelationCause, RelationTreat, RelationPresent, RelationDiagnose,
		RelationAggravate, RelationPrevent, RelationImprove, RelationAffect:
		return true
	}
	return false
}

type EntityType string

const (
	EntityDisease      EntityType = "disease"
	EntitySymptom      EntityType = "symptom"
	EntityTreatment    EntityType = "treatment"
	EntityRiskFactor   EntityType = "risk_factor"
	EntityTest         EntityType = "test"
	EntityGene         EntityType = "gene"
	EntityBiomarker    EntityType = "biomarker"
	EntityComplication EntityType = "complication"
	EntityPrognosis    EntityType = "prognosis"
	EntityComorbidity  EntityType = "comorbidity"
	EntityProgression  EntityType = "progression"
	EntityBodyPart     EntityType = "body_part"
)

func ValidEntityType(e string) bool {
	switch EntityType(e) {
	case EntityDisease, EntitySymptom, EntityTreatment, EntityRiskFactor,
		EntityTest, EntityGene, EntityBiomarker, EntityComplication,
		EntityPrognosis, EntityComorbidity, EntityProgression, EntityBodyPart:
		return true
	}
	return false
}

// typeResolutionPriority breaks count ties when resolving an entity's type.
// Higher wins.
var typeResolutionPriority = map[EntityType]int{
	EntityDisease:      12,
	EntityBodyPart:     11,
	EntityTreatment:    10,
	EntitySymptom:      9,
	EntityComplication: 8,
	EntityComorbidity:  7,
	EntityRiskFactor:   6,
	EntityBiomarker:    5,
	EntityProgression:  4,
	EntityTest:         3,
	EntityGene:         2,
	EntityPrognosis:    1,
}

func TypeResolutionPriority(t EntityType) int {
	return typeResolutionPriority[t]
}

// RawRelation is a candidate relation as produced by the extraction
// collaborator. Fields are unvalidated strings and may be malformed.
type RawRelation struct {
	RelationType string `json:"relation_type"`
	Entity1Type  string `json:"entity1_type"`
	Entity1Name  string `json:"entity1_name"`
	Entity2Type  string `json:"entity2_type"`
	Entity2Name  string `json:"entity2_name"`
	PubID        string `json:"pub_id,omitempty"`
}

// Valid reports whether the relation and entity type fields are members
// of the fixed enumerations.
func (r RawRelation) Valid() bool {
	return ValidRelationType(r.RelationType) &&
		ValidEntityType(r.Entity1Type) &&
		ValidEntityType(r.Entity2Type)
}

// RefinedRelation is a RawRelation after name normalization and
// deduplication. Entity names are non-empty, normalized and distinct.
type RefinedRelation struct {
	RelationType RelationType `json:"relation_type"`
	Entity1Type  EntityType   `json:"entity1_type"`
	Entity1Name  string       `json:"entity1_name"`
	Entity2Type  EntityType   `json:"entity2_type"`
	Entity2Name  string       `json:"entity2_name"`
	PubID        string       `json:"pub_id,omitempty"`
}

// Key is the 6-tuple identity of a refined relation within a batch.
func (r RefinedRelation) Key() string {
	return strings.Join([]string{
		string(r.RelationType),
		string(r.Entity1Type), r.Entity1Name,
		string(r.Entity2Type), r.Entity2Name,
		r.PubID,
	}, "|")
}
