package extract

import (
	"regexp"

	"github.com/AlexLecu/LLMKGraph/internal/domain"
)

// Model output is one record per line in the exact format the prompt
// demands. Parsing is strict grammar only: a record must match the full
// field set or it is dropped. Extracted text is never evaluated.
var relationRecord = regexp.MustCompile(
	`\{'relation_type':\s*'([^'{}]*)',\s*'entity1_type':\s*'([^'{}]*)',\s*'entity1_name':\s*'([^'{}]*)',\s*'entity2_type':\s*'([^'{}]*)',\s*'entity2_name':\s*'([^'{}]*)'\}`)

// ParseRelations extracts every well-formed relation record from raw
// model output and validates its fields against the fixed relation and
// entity type enumerations. Malformed or out-of-enum records are
// silently skipped; validation failures are the caller's to log.
func ParseRelations(output string) []domain.RawRelation {
	matches := relationRecord.FindAllStringSubmatch(output, -1)
	relations := make([]domain.RawRelation, 0, len(matches))

	for _, m := range matches {
		rel := domain.RawRelation{
			RelationType: m[1],
			Entity1Type:  m[2],
			Entity1Name:  m[3],
			Entity2Type:  m[4],
			Entity2Name:  m[5],
		}
		if !rel.Valid() {
			continue
		}
		relations = append(relations, rel)
	}

	return relations
}
