package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
)

//go:embed data/catalog.json
var catalogData []byte

// Catalog is the read-only lesson catalog, loaded once at startup.
type Catalog struct {
	stages   []Stage
	subjects []Subject
	lessons  map[string]map[int]Lesson

	stagesByID   map[string]Stage
	subjectsByID map[string]Subject
}

type catalogFile struct {
	Stages   []Stage                      `json:"stages"`
	Subjects []Subject                    `json:"subjects"`
	Lessons  map[string]map[string]Lesson `json:"lessons"`
}

// Load parses and validates the embedded catalog data.
func Load() (*Catalog, error) {
	return Parse(catalogData)
}

// Parse builds a Catalog from raw JSON, validating it against the catalog
// schema and the structural rules lessons must satisfy.
func Parse(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var raw catalogFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		stages:       raw.Stages,
		subjects:     raw.Subjects,
		lessons:      make(map[string]map[int]Lesson, len(raw.Lessons)),
		stagesByID:   make(map[string]Stage, len(raw.Stages)),
		subjectsByID: make(map[string]Subject, len(raw.Subjects)),
	}

	for _, st := range raw.Stages {
		c.stagesByID[st.ID] = st
	}
	for _, sub := range raw.Subjects {
		c.subjectsByID[sub.ID] = sub
	}
	for subjectID, byNum := range raw.Lessons {
		m := make(map[int]Lesson, len(byNum))
		for numStr, lesson := range byNum {
			num, err := strconv.Atoi(numStr)
			if err != nil {
				return nil, fmt.Errorf("catalog: subject %q: bad lesson number %q", subjectID, numStr)
			}
			m[num] = lesson
		}
		c.lessons[subjectID] = m
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate enforces the referential rules the JSON schema cannot express.
func (c *Catalog) validate() error {
	if len(c.stages) == 0 {
		return fmt.Errorf("catalog: no stages defined")
	}
	for _, sub := range c.subjects {
		if _, ok := c.stagesByID[sub.Stage]; !ok {
			return fmt.Errorf("catalog: subject %q references unknown stage %q", sub.ID, sub.Stage)
		}
	}
	for subjectID, byNum := range c.lessons {
		if _, ok := c.subjectsByID[subjectID]; !ok {
			return fmt.Errorf("catalog: lessons for unknown subject %q", subjectID)
		}
		for num, lesson := range byNum {
			if num < 1 || num > TotalLessons {
				return fmt.Errorf("catalog: subject %q: lesson number %d out of range", subjectID, num)
			}
			if q := lesson.Quiz; q != nil {
				if len(q.Options) < 2 {
					return fmt.Errorf("catalog: subject %q lesson %d: quiz needs at least 2 options", subjectID, num)
				}
				if q.Answer < 0 || q.Answer >= len(q.Options) {
					return fmt.Errorf("catalog: subject %q lesson %d: quiz answer %d out of range", subjectID, num, q.Answer)
				}
			}
		}
	}
	return nil
}

// Stages returns the ordered stage list.
func (c *Catalog) Stages() []Stage {
	return c.stages
}

// StageByID looks up a stage.
func (c *Catalog) StageByID(id string) (Stage, bool) {
	st, ok := c.stagesByID[id]
	return st, ok
}

// Subjects returns all subjects in catalog-declared order.
func (c *Catalog) Subjects() []Subject {
	return c.subjects
}

// SubjectByID looks up a subject.
func (c *Catalog) SubjectByID(id string) (Subject, bool) {
	sub, ok := c.subjectsByID[id]
	return sub, ok
}

// SubjectsForStage returns the stage's subjects in catalog-declared order.
// Menu numbering is 1-based over this slice.
func (c *Catalog) SubjectsForStage(stageID string) []Subject {
	var out []Subject
	for _, sub := range c.subjects {
		if sub.Stage == stageID {
			out = append(out, sub)
		}
	}
	return out
}

// Lookup returns the lesson for (subject, 1-based lesson number).
func (c *Catalog) Lookup(subjectID string, lessonNum int) (Lesson, bool) {
	byNum, ok := c.lessons[subjectID]
	if !ok {
		return Lesson{}, false
	}
	lesson, ok := byNum[lessonNum]
	return lesson, ok
}

// LessonCount returns the number of lessons with content for a subject.
func (c *Catalog) LessonCount(subjectID string) int {
	return len(c.lessons[subjectID])
}
