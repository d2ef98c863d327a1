package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

const (
	publicationBaseURL   = "https://app.dimensions.ai/details/publication/"
	clinicalTrialBaseURL = "https://app.dimensions.ai/details/clinical_trial/"
)

// Assembler turns located entities and their expanded relations into a
// bounded natural-language context block. Selection is rank-driven: the
// earlier an entity was found, the more of its relations survive.
type Assembler struct {
	maxEntities           int
	maxRelationsPerEntity int
	maxContextChars       int
}

func NewAssembler(maxEntities, maxRelationsPerEntity, maxContextChars int) *Assembler {
	return &Assembler{
		maxEntities:           maxEntities,
		maxRelationsPerEntity: maxRelationsPerEntity,
		maxContextChars:       maxContextChars,
	}
}

// Assembled is the rendered context plus its bookkeeping. Empty means the
// graph had nothing for this question; callers surface that as a signal,
// not a fault.
type Assembled struct {
	Context       string
	Sources       []string
	EntityCount   int
	RelationCount int
	Empty         bool
}

func (a *Assembler) Assemble(candidates []domain.EntityRef, relations []domain.Relation) Assembled {
	selected := candidates
	if len(selected) > a.maxEntities {
		selected = selected[:a.maxEntities]
	}
	if len(selected) == 0 {
		return Assembled{Empty: true}
	}

	rank := make(map[uuid.UUID]int, len(selected))
	for i, ref := range selected {
		rank[ref.ID] = i
	}

	// Score every relation touching a selected entity: the better-ranked
	// endpoint dominates, discovery order breaks ties.
	type scored struct {
		rel   domain.Relation
		score float64
	}
	var ranked []scored
	for i, rel := range relations {
		subjectRank, subjectOK := rank[rel.Subject.ID]
		objectRank, objectOK := rank[rel.Object.ID]
		if !subjectOK && !objectOK {
			continue
		}
		if !subjectOK {
			subjectRank = len(selected)
		}
		if !objectOK {
			objectRank = len(selected)
		}
		score := float64(min(subjectRank, objectRank)) + float64(i)*0.01
		ranked = append(ranked, scored{rel: rel, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })

	// Cap how many relations each selected entity contributes. The
	// higher-ranked endpoint claims the slot first, the other endpoint
	// catches the overflow.
	buckets := make(map[uuid.UUID][]domain.Relation, len(selected))
	for _, sc := range ranked {
		for _, id := range endpointsByRank(sc.rel, rank) {
			if len(buckets[id]) < a.maxRelationsPerEntity {
				buckets[id] = append(buckets[id], sc.rel)
				break
			}
		}
	}

	var kept []domain.Relation
	for _, ref := range selected {
		kept = append(kept, buckets[ref.ID]...)
	}
	kept = a.trimToBudget(kept)
	if len(kept) == 0 {
		return Assembled{Empty: true}
	}

	sentences := make([]string, len(kept))
	for i, rel := range kept {
		sentences[i] = renderRelation(rel)
	}

	return Assembled{
		Context:       strings.Join(sentences, "\n\n"),
		Sources:       extractSources(kept),
		EntityCount:   len(selected),
		RelationCount: len(kept),
	}
}

// endpointsByRank returns the relation's selected endpoints ordered by
// rank, best first. Endpoints outside the selected set are omitted.
func endpointsByRank(rel domain.Relation, rank map[uuid.UUID]int) []uuid.UUID {
	subjRank, subjOK := rank[rel.Subject.ID]
	objRank, objOK := rank[rel.Object.ID]
	switch {
	case subjOK && objOK:
		if objRank < subjRank {
			return []uuid.UUID{rel.Object.ID, rel.Subject.ID}
		}
		return []uuid.UUID{rel.Subject.ID, rel.Object.ID}
	case subjOK:
		return []uuid.UUID{rel.Subject.ID}
	case objOK:
		return []uuid.UUID{rel.Object.ID}
	default:
		return nil
	}
}

// trimToBudget drops whole relations from the tail until the rendered
// context fits maxContextChars. Sentences are never cut mid-way.
func (a *Assembler) trimToBudget(relations []domain.Relation) []domain.Relation {
	total := 0
	for i, rel := range relations {
		total += len(renderRelation(rel)) + 2
		if total > a.maxContextChars {
			return relations[:i]
		}
	}
	return relations
}

// renderRelation formats one edge as a citation-bearing sentence, e.g.
// "smoking (risk factor) cause wet amd (disease), according to [...].".
func renderRelation(rel domain.Relation) string {
	subject := fmt.Sprintf("%s (%s)",
		strings.ReplaceAll(rel.Subject.Name, "_", " "),
		strings.ToLower(strings.ReplaceAll(string(rel.Subject.Type), "_", " ")))
	object := fmt.Sprintf("%s (%s)",
		strings.ReplaceAll(rel.Object.Name, "_", " "),
		strings.ToLower(strings.ReplaceAll(string(rel.Object.Type), "_", " ")))
	predicate := strings.ToLower(strings.ReplaceAll(string(rel.Predicate), "_", " "))

	var links []string
	for _, pub := range rel.Publications {
		links = append(links, renderPubLink(pub.Name))
	}
	citation := "research"
	if len(links) > 0 {
		citation = strings.Join(links, ", ")
	}
	return fmt.Sprintf("%s %s %s, according to %s.", subject, predicate, object, citation)
}

// renderPubLink builds a markdown link for one stored publication name.
// Publication ids ("pub.xxx") resolve against the publication catalog,
// anything else (clinical trial ids like NCT01291121) against trials.
func renderPubLink(name string) string {
	cleaned := cleanPubName(name)
	if strings.HasPrefix(cleaned, "pub") {
		id := strings.ReplaceAll(cleaned, "_", ".")
		return fmt.Sprintf("[%s](%s%s)", id, publicationBaseURL, id)
	}
	return fmt.Sprintf("[%s](%s%s)", cleaned, clinicalTrialBaseURL, cleaned)
}

// cleanPubName strips the storage prefix from a publication name.
func cleanPubName(name string) string {
	return strings.TrimPrefix(name, "PUB_")
}

// extractSources lists the distinct publication names backing the kept
// relations, in first-seen order.
func extractSources(relations []domain.Relation) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, rel := range relations {
		for _, pub := range rel.Publications {
			source := strings.ReplaceAll(cleanPubName(pub.Name), "_", ".")
			if seen[source] {
				continue
			}
			seen[source] = true
			sources = append(sources, source)
		}
	}
	return sources
}
