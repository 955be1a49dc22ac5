package cvparser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirestack/beacon/internal/ai/completion"
)

type fakeClient struct {
	response string
	err      error
	lastReq  completion.Request
	calls    int
}

func (f *fakeClient) Complete(_ context.Context, req completion.Request) (string, error) {
	f.calls++
	f.lastReq = req
	return f.response, f.err
}

func TestExtractProfile_StructuredResponse(t *testing.T) {
	client := &fakeClient{response: `{
		"name": "Jane Doe",
		"contact": {"email": "jane@example.com", "phone": "+51 999 888 777"},
		"skills": ["Go", "SQL", "go", "  ", "Docker"],
		"experience_summary": "Five years building backend services.",
		"education_summary": "BSc in Computer Science.",
		"work_history": [{"title": "Engineer", "company": "Acme", "duration": "2019-2024"}]
	}`}
	parser := NewParser(client, DefaultConfig())

	data, err := parser.ExtractProfile(context.Background(), "raw cv text")
	require.NoError(t, err)

	assert.Equal(t, ModeStructured, data.Mode)
	assert.Equal(t, "Jane Doe", data.Name)
	assert.Equal(t, "jane@example.com", data.Contact.Email)
	assert.Equal(t, "+51 999 888 777", data.Contact.Phone)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, data.Skills)
	require.NotNil(t, data.ExperienceSummary)
	assert.Equal(t, "Five years building backend services.", *data.ExperienceSummary)
	require.NotNil(t, data.EducationSummary)
	assert.Equal(t, "BSc in Computer Science.", *data.EducationSummary)
	require.Len(t, data.WorkHistory, 1)
	assert.Equal(t, WorkHistoryEntry{Title: "Engineer", Company: "Acme", DurationText: "2019-2024"}, data.WorkHistory[0])
}

func TestExtractProfile_StructuredResponseWithCodeFences(t *testing.T) {
	client := &fakeClient{response: "```json\n{\"name\": \"Jane\", \"skills\": [\"Go\"]}\n```"}
	parser := NewParser(client, DefaultConfig())

	data, err := parser.ExtractProfile(context.Background(), "cv")
	require.NoError(t, err)

	assert.Equal(t, ModeStructured, data.Mode)
	assert.Equal(t, "Jane", data.Name)
	assert.Equal(t, []string{"Go"}, data.Skills)
}

func TestExtractProfile_StructuredAlternateKeys(t *testing.T) {
	client := &fakeClient{response: `{"skills": ["Go"], "experience": "Backend work.", "education": "BSc."}`}
	parser := NewParser(client, DefaultConfig())

	data, err := parser.ExtractProfile(context.Background(), "cv")
	require.NoError(t, err)

	require.NotNil(t, data.ExperienceSummary)
	assert.Equal(t, "Backend work.", *data.ExperienceSummary)
	require.NotNil(t, data.EducationSummary)
	assert.Equal(t, "BSc.", *data.EducationSummary)
}

func TestExtractProfile_LabeledResponse(t *testing.T) {
	client := &fakeClient{response: "Skills:\n- Go\n- SQL\n\nExperience:\nFive years backend.\n\nEducation:\nBSc CS.\n\nWork history:\nAcme: Engineer (2019-2024)"}
	parser := NewParser(client, DefaultConfig())

	data, err := parser.ExtractProfile(context.Background(), "cv")
	require.NoError(t, err)

	assert.Equal(t, ModeLabeled, data.Mode)
	assert.Equal(t, []string{"Go", "SQL"}, data.Skills)
	require.NotNil(t, data.ExperienceSummary)
	assert.Equal(t, "Five years backend.", *data.ExperienceSummary)
	require.NotNil(t, data.EducationSummary)
	assert.Equal(t, "BSc CS.", *data.EducationSummary)
	require.Len(t, data.WorkHistory, 1)
	assert.Equal(t, WorkHistoryEntry{Title: "Engineer", Company: "Acme", DurationText: "2019-2024"}, data.WorkHistory[0])
	assert.Empty(t, data.RawWorkHistory)
}

func TestExtractProfile_LabeledResponseUnstructuredHistory(t *testing.T) {
	client := &fakeClient{response: "Skills: Go, SQL\n\nWork history:\nVaried roles across several startups since 2015."}
	parser := NewParser(client, DefaultConfig())

	data, err := parser.ExtractProfile(context.Background(), "cv")
	require.NoError(t, err)

	assert.Equal(t, ModeLabeled, data.Mode)
	assert.Empty(t, data.WorkHistory)
	assert.Equal(t, "Varied roles across several startups since 2015.", data.RawWorkHistory)
}

func TestExtractProfile_UnparseableResponse(t *testing.T) {
	client := &fakeClient{response: "I could not make sense of this document, sorry!"}
	parser := NewParser(client, DefaultConfig())

	data, err := parser.ExtractProfile(context.Background(), "cv")
	require.NoError(t, err)

	assert.Equal(t, ModeUnparseable, data.Mode)
	assert.NotNil(t, data.Skills)
	assert.Empty(t, data.Skills)
	assert.Nil(t, data.ExperienceSummary)
	assert.Nil(t, data.EducationSummary)
}

func TestExtractProfile_EmptyContentFails(t *testing.T) {
	client := &fakeClient{response: "   \n"}
	parser := NewParser(client, DefaultConfig())

	_, err := parser.ExtractProfile(context.Background(), "cv")
	assert.Error(t, err)
}

func TestExtractProfile_ClientErrorPropagates(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited upstream")}
	parser := NewParser(client, DefaultConfig())

	_, err := parser.ExtractProfile(context.Background(), "cv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited upstream")
}

func TestExtractProfile_TruncatesInput(t *testing.T) {
	client := &fakeClient{response: `{"skills": []}`}
	parser := NewParser(client, Config{MaxInputChars: 100, Temperature: 0.3, MaxTokens: 1500})

	long := strings.Repeat("a", 150) + "TAIL"
	data, err := parser.ExtractProfile(context.Background(), long)
	require.NoError(t, err)

	assert.Equal(t, 100, data.SourceChars)
	assert.NotContains(t, client.lastReq.Prompt, "TAIL")
	assert.True(t, client.lastReq.JSONMode)
	assert.InDelta(t, 0.3, client.lastReq.Temperature, 0.001)
}

func TestDedupeSkills(t *testing.T) {
	got := dedupeSkills([]string{" Go ", "go", "", "SQL", "sql", "Docker"})
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, got)
}
