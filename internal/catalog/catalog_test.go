package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	stages := cat.Stages()
	require.Len(t, stages, 5)
	require.Equal(t, "preschool", stages[0].ID)
	require.Equal(t, "tertiary", stages[4].ID)
}

func TestSubjectsForStage(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	subjects := cat.SubjectsForStage("preschool")
	require.NotEmpty(t, subjects)
	for _, sub := range subjects {
		require.Equal(t, "preschool", sub.Stage)
	}

	require.Empty(t, cat.SubjectsForStage("no-such-stage"))
}

func TestLookup(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	lesson, ok := cat.Lookup("ps-colors", 1)
	require.True(t, ok)
	require.Equal(t, "The Color Red", lesson.Title)
	require.NotNil(t, lesson.Quiz)
	require.Equal(t, 1, lesson.Quiz.Answer)
	require.Len(t, lesson.Quiz.Options, 4)

	_, ok = cat.Lookup("ps-colors", 99)
	require.False(t, ok)

	_, ok = cat.Lookup("no-such-subject", 1)
	require.False(t, ok)
}

func TestLessonCount(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	require.Equal(t, 5, cat.LessonCount("ps-colors"))
	require.Equal(t, 0, cat.LessonCount("no-such-subject"))
}

func TestParse_RejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"missing keys":  `{"stages": []}`,
		"wrong types":   `{"stages": "x", "subjects": [], "lessons": {}}`,
		"empty catalog": `{"stages": [], "subjects": [], "lessons": {}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(payload))
			require.Error(t, err)
		})
	}
}

func TestParse_SubjectMustReferenceStage(t *testing.T) {
	payload := `{
		"stages": [{"id": "s1", "title": "Stage", "icon": "x"}],
		"subjects": [{"id": "sub1", "stage": "ghost", "title": "Sub", "icon": "y", "description": "d"}],
		"lessons": {}
	}`
	_, err := Parse([]byte(payload))
	require.Error(t, err)
}
