package reviewqueue

import (
	"encoding/json"
	"testing"

	"bid-match/internal/domain/jdspec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUnknownSkill_CollapsesOnNormalizedName(t *testing.T) {
	q := New()
	require.NoError(t, q.AddUnknownSkill("Svelte", "jd-1"))
	require.NoError(t, q.AddUnknownSkill("svelte", "jd-1"))
	require.NoError(t, q.AddUnknownSkill(" SVELTE ", "jd-2"))

	require.Equal(t, 1, q.Len())
	item, ok := q.ItemByName("svelte")
	require.True(t, ok)
	assert.Equal(t, "svelte", item.SkillName)
	assert.Equal(t, 3, item.Frequency)
	assert.Equal(t, []string{"jd-1", "jd-2"}, item.DetectedIn)
	assert.Equal(t, StatusPending, item.Status)
	assert.False(t, item.FirstDetectedAt.IsZero())
}

func TestAddUnknownSkill_EmptyName(t *testing.T) {
	q := New()
	require.ErrorIs(t, q.AddUnknownSkill("   ", "jd-1"), ErrEmptyName)
	assert.Equal(t, 0, q.Len())
}

func TestApproveAsCanonical(t *testing.T) {
	q := New()
	require.NoError(t, q.AddUnknownSkill("svelte", "jd-1"))

	dec, err := q.ApproveAsCanonical("Svelte", jdspec.LayerFrontend)
	require.NoError(t, err)
	assert.Equal(t, "svelte", dec.SkillName)
	assert.Equal(t, DecisionCanonical, dec.Decision)
	assert.Equal(t, "svelte", dec.CanonicalName)
	assert.Equal(t, jdspec.LayerFrontend, dec.Category)
	assert.False(t, dec.ApprovedAt.IsZero())

	item, _ := q.ItemByName("svelte")
	assert.Equal(t, StatusApproved, item.Status)

	_, err = q.ApproveAsCanonical("svelte", jdspec.LayerFrontend)
	require.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.Contains(t, err.Error(), "approved")
}

func TestApproveAsCanonical_Preconditions(t *testing.T) {
	q := New()
	_, err := q.ApproveAsCanonical("ghost", jdspec.LayerBackend)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = q.ApproveAsCanonical("ghost", jdspec.TechLayer("mobile"))
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestApproveAsVariation(t *testing.T) {
	q := New()
	require.NoError(t, q.AddUnknownSkill("reactjs", "jd-1"))

	_, err := q.ApproveAsVariation("reactjs", "  ")
	require.ErrorIs(t, err, ErrEmptyCanonicalName)

	dec, err := q.ApproveAsVariation("reactjs", " React ")
	require.NoError(t, err)
	assert.Equal(t, DecisionVariation, dec.Decision)
	assert.Equal(t, "react", dec.CanonicalName)

	_, err = q.ApproveAsVariation("reactjs", "react")
	require.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestReject(t *testing.T) {
	q := New()
	require.NoError(t, q.AddUnknownSkill("misc", "jd-1"))

	_, err := q.Reject("misc", "   ")
	require.ErrorIs(t, err, ErrEmptyReason)

	rej, err := q.Reject("misc", "  typo, not a skill  ")
	require.NoError(t, err)
	assert.Equal(t, "misc", rej.SkillName)
	assert.Equal(t, "typo, not a skill", rej.Reason)
	assert.False(t, rej.RejectedAt.IsZero())

	_, err = q.Reject("misc", "again")
	require.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.Contains(t, err.Error(), "rejected")
}

func TestFrequencyKeepsCountingAfterDecision(t *testing.T) {
	// A decided item still accumulates detections; only the workflow state
	// is terminal.
	q := New()
	require.NoError(t, q.AddUnknownSkill("svelte", "jd-1"))
	_, err := q.ApproveAsCanonical("svelte", jdspec.LayerFrontend)
	require.NoError(t, err)

	require.NoError(t, q.AddUnknownSkill("svelte", "jd-9"))
	item, _ := q.ItemByName("svelte")
	assert.Equal(t, 2, item.Frequency)
	assert.Equal(t, StatusApproved, item.Status)
}

func TestQueries_ReturnDefensiveCopies(t *testing.T) {
	q := New()
	require.NoError(t, q.AddUnknownSkill("svelte", "jd-1"))

	item, ok := q.ItemByName("svelte")
	require.True(t, ok)
	item.Frequency = 99
	item.DetectedIn[0] = "tampered"

	fresh, _ := q.ItemByName("svelte")
	assert.Equal(t, 1, fresh.Frequency)
	assert.Equal(t, []string{"jd-1"}, fresh.DetectedIn)

	items := q.Items()
	items[0].Status = StatusRejected
	fresh, _ = q.ItemByName("svelte")
	assert.Equal(t, StatusPending, fresh.Status)
}

func TestItems_InsertionOrderAndPendingFilter(t *testing.T) {
	q := New()
	require.NoError(t, q.AddUnknownSkill("b-skill", "jd-1"))
	require.NoError(t, q.AddUnknownSkill("a-skill", "jd-1"))
	require.NoError(t, q.AddUnknownSkill("c-skill", "jd-2"))
	_, err := q.Reject("a-skill", "noise")
	require.NoError(t, err)

	items := q.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "b-skill", items[0].SkillName)
	assert.Equal(t, "a-skill", items[1].SkillName)
	assert.Equal(t, "c-skill", items[2].SkillName)

	pending := q.PendingItems()
	require.Len(t, pending, 2)
	assert.Equal(t, "b-skill", pending[0].SkillName)
	assert.Equal(t, "c-skill", pending[1].SkillName)
}

func TestJSONRoundTrip(t *testing.T) {
	q := New()
	require.NoError(t, q.AddUnknownSkill("svelte", "jd-1"))
	require.NoError(t, q.AddUnknownSkill("svelte", "jd-2"))
	require.NoError(t, q.AddUnknownSkill("htmx", "jd-2"))
	_, err := q.Reject("htmx", "not tracked")
	require.NoError(t, err)

	data, err := json.Marshal(q)
	require.NoError(t, err)

	restored, err := FromJSON(data)
	require.NoError(t, err)
	require.Equal(t, 2, restored.Len())

	svelte, ok := restored.ItemByName("svelte")
	require.True(t, ok)
	assert.Equal(t, 2, svelte.Frequency)
	assert.Equal(t, []string{"jd-1", "jd-2"}, svelte.DetectedIn)

	htmx, ok := restored.ItemByName("htmx")
	require.True(t, ok)
	assert.Equal(t, StatusRejected, htmx.Status)
}
