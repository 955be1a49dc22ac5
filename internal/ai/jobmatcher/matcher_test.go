package jobmatcher

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

func testCatalog() []JobListing {
	return []JobListing{
		{ID: "job-1", Title: "Backend Engineer", CompanyName: "Acme", RequiredSkills: []string{"Go", "SQL"}, Description: "Build APIs"},
		{ID: "job-2", Title: "Data Engineer", CompanyName: "Globex", RequiredSkills: []string{"Python"}, Description: "Pipelines"},
		{ID: "job-3", Title: "SRE", CompanyName: "Initech", RequiredSkills: []string{"Kubernetes"}, Description: "Keep it up"},
	}
}

func testCandidate() CandidateSummary {
	return CandidateSummary{
		Skills:     []string{"Go", "SQL"},
		Experience: "Five years backend.",
		Education:  "BSc CS.",
	}
}

func TestRecommend_EmptyCatalogSkipsCompletion(t *testing.T) {
	client := &fakeClient{}
	matcher := NewMatcher(client, DefaultConfig())

	matches, err := matcher.Recommend(context.Background(), testCandidate(), nil, 5)
	require.NoError(t, err)

	assert.Empty(t, matches)
	assert.Zero(t, client.calls)
}

func TestRecommend_RanksByScoreDescending(t *testing.T) {
	client := &fakeClient{response: `[
		{"jobId": "job-2", "relevanceScore": 40, "reasons": "Some overlap"},
		{"jobId": "job-1", "relevanceScore": 90, "reasons": "Strong skill match"},
		{"jobId": "job-3", "relevanceScore": 55, "reasons": "Adjacent role"}
	]`}
	matcher := NewMatcher(client, DefaultConfig())

	matches, err := matcher.Recommend(context.Background(), testCandidate(), testCatalog(), 5)
	require.NoError(t, err)

	require.Len(t, matches, 3)
	assert.Equal(t, "job-1", matches[0].JobID)
	assert.Equal(t, 90, matches[0].RelevanceScore)
	assert.Equal(t, "job-3", matches[1].JobID)
	assert.Equal(t, "job-2", matches[2].JobID)
	assert.Equal(t, 1, client.calls)
}

func TestRecommend_TruncatesToTopN(t *testing.T) {
	client := &fakeClient{response: `[
		{"jobId": "job-1", "relevanceScore": 90, "reasons": "a"},
		{"jobId": "job-2", "relevanceScore": 80, "reasons": "b"},
		{"jobId": "job-3", "relevanceScore": 70, "reasons": "c"}
	]`}
	matcher := NewMatcher(client, DefaultConfig())

	matches, err := matcher.Recommend(context.Background(), testCandidate(), testCatalog(), 2)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, "job-1", matches[0].JobID)
	assert.Equal(t, "job-2", matches[1].JobID)
}

func TestRecommend_DropsUnknownJobIDs(t *testing.T) {
	client := &fakeClient{response: `[
		{"jobId": "job-1", "relevanceScore": 90, "reasons": "real"},
		{"jobId": "job-999", "relevanceScore": 95, "reasons": "hallucinated"}
	]`}
	matcher := NewMatcher(client, DefaultConfig())

	matches, err := matcher.Recommend(context.Background(), testCandidate(), testCatalog(), 5)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "job-1", matches[0].JobID)
}

func TestRecommend_DropsInvalidScores(t *testing.T) {
	client := &fakeClient{response: `[
		{"jobId": "job-1", "relevanceScore": 150, "reasons": "too high"},
		{"jobId": "job-2", "relevanceScore": -5, "reasons": "negative"},
		{"jobId": "job-3", "relevanceScore": 72.6, "reasons": "valid float"}
	]`}
	matcher := NewMatcher(client, DefaultConfig())

	matches, err := matcher.Recommend(context.Background(), testCandidate(), testCatalog(), 5)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "job-3", matches[0].JobID)
	assert.Equal(t, 73, matches[0].RelevanceScore)
}

func TestRecommend_UnparseableResponseYieldsNoMatches(t *testing.T) {
	client := &fakeClient{response: "Here are some great jobs for you!"}
	matcher := NewMatcher(client, DefaultConfig())

	matches, err := matcher.Recommend(context.Background(), testCandidate(), testCatalog(), 5)
	require.NoError(t, err)

	assert.Empty(t, matches)
}

func TestRecommend_StripsCodeFences(t *testing.T) {
	client := &fakeClient{response: "```json\n[{\"jobId\": \"job-1\", \"relevanceScore\": 80, \"reasons\": \"ok\"}]\n```"}
	matcher := NewMatcher(client, DefaultConfig())

	matches, err := matcher.Recommend(context.Background(), testCandidate(), testCatalog(), 5)
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "job-1", matches[0].JobID)
}

func TestRecommend_ClientErrorPropagates(t *testing.T) {
	client := &fakeClient{err: errors.New("upstream timeout")}
	matcher := NewMatcher(client, DefaultConfig())

	_, err := matcher.Recommend(context.Background(), testCandidate(), testCatalog(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream timeout")
}

func TestRecommend_StableOrderBetweenEqualScores(t *testing.T) {
	client := &fakeClient{response: `[
		{"jobId": "job-2", "relevanceScore": 80, "reasons": "first"},
		{"jobId": "job-1", "relevanceScore": 80, "reasons": "second"}
	]`}
	matcher := NewMatcher(client, DefaultConfig())

	for i := 0; i < 3; i++ {
		matches, err := matcher.Recommend(context.Background(), testCandidate(), testCatalog(), 5)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "job-2", matches[0].JobID)
		assert.Equal(t, "job-1", matches[1].JobID)
	}
}

func TestBuildPrompt_TruncatesDescriptions(t *testing.T) {
	client := &fakeClient{response: "[]"}
	matcher := NewMatcher(client, DefaultConfig())

	jobs := []JobListing{{
		ID:          "job-long",
		Title:       "Engineer",
		CompanyName: "Acme",
		Description: strings.Repeat("x", 300),
	}}

	_, err := matcher.Recommend(context.Background(), testCandidate(), jobs, 5)
	require.NoError(t, err)

	assert.Contains(t, client.lastReq.Prompt, strings.Repeat("x", 200)+"...")
	assert.NotContains(t, client.lastReq.Prompt, strings.Repeat("x", 201))
}

func TestBuildPrompt_MissingProfileSections(t *testing.T) {
	client := &fakeClient{response: "[]"}
	matcher := NewMatcher(client, DefaultConfig())

	_, err := matcher.Recommend(context.Background(), CandidateSummary{Skills: []string{"Go"}}, testCatalog(), 5)
	require.NoError(t, err)

	assert.Contains(t, client.lastReq.Prompt, "Not provided")
}
