package navigator

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/surveynav/internal/location"
	"github.com/specialistvlad/surveynav/internal/testutil"
)

func TestFrontEndNavigation_Household(t *testing.T) {
	md := map[string]any{
		"eq_id":                   "1",
		"form_type":               "0205",
		"collection_exercise_sid": "999",
	}
	nav := New(testutil.LoadSurvey(t, testutil.HouseholdHCL), testutil.Snapshot(md, nil,
		testutil.Answer("household-composition", 0, "household-composition", "first-name", 0, "Joe"),
		testutil.Answer("household-composition", 0, "household-composition", "last-name", 0, "Bloggs"),
		testutil.Answer("household-composition", 0, "household-composition", "first-name", 1, "Jim"),
	))

	completed := []location.Location{
		loc("household-composition", 0, "household-composition"),
		loc("repeating-group", 0, "repeating-block-1"),
		loc("repeating-group", 0, "repeating-block-2"),
		loc("repeating-group", 1, "repeating-block-1"),
	}

	got, err := nav.FrontEndNavigation(context.Background(), completed, "repeating-group", 1)
	require.NoError(t, err)

	want := []NavigationEntry{
		{
			Name:      "Household composition",
			Completed: true,
			Location:  loc("household-composition", 0, "household-composition"),
			URL:       "/questionnaire/1/0205/999/household-composition/0/household-composition/",
		},
		{
			Name:      "Joe Bloggs",
			Repeating: true,
			Completed: true,
			Location:  loc("repeating-group", 0, "repeating-block-1"),
			URL:       "/questionnaire/1/0205/999/repeating-group/0/repeating-block-1/",
		},
		{
			Name:      "Jim",
			Repeating: true,
			Highlight: true,
			Location:  loc("repeating-group", 1, "repeating-block-1"),
			URL:       "/questionnaire/1/0205/999/repeating-group/1/repeating-block-1/",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("navigation mismatch (-want +got):\n%s", diff)
	}
}

func TestFrontEndNavigation_MissingNameIsEmpty(t *testing.T) {
	nav := New(testutil.LoadSurvey(t, testutil.HouseholdHCL), testutil.Snapshot(nil, nil,
		testutil.Answer("household-composition", 0, "household-composition", "first-name", 0, "Joe"),
		testutil.Answer("household-composition", 0, "household-composition", "first-name", 1, nil),
	))

	got, err := nav.FrontEndNavigation(context.Background(), nil, "household-composition", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "Joe", got[1].Name)
	require.Equal(t, "", got[2].Name)
	require.True(t, got[0].Highlight)
}

func TestFrontEndNavigation_LinksPastIntroduction(t *testing.T) {
	nav := New(testutil.LoadSurvey(t, testutil.RepeatsHCL), testutil.Snapshot(nil, nil,
		testutil.Answer("household", 0, "household-block", "household-count", 0, 2),
	))

	got, err := nav.FrontEndNavigation(context.Background(), []location.Location{
		loc("person", 1, "person-details"),
	}, "", -1)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Equal(t, "Person", got[1].Name)
	require.Equal(t, loc("person", 0, "person-details"), got[1].Location)
	require.False(t, got[1].Completed)
	require.Equal(t, loc("person", 1, "person-details"), got[2].Location)
	require.True(t, got[2].Completed)
}
