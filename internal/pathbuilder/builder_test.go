package pathbuilder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/surveynav/internal/answers"
	"github.com/specialistvlad/surveynav/internal/location"
	"github.com/specialistvlad/surveynav/internal/rules"
	"github.com/specialistvlad/surveynav/internal/schema"
	"github.com/specialistvlad/surveynav/internal/testutil"
)

var loc = testutil.Loc

func build(t *testing.T, survey *schema.Survey, md map[string]any, recorded ...answers.Answer) []location.Location {
	t.Helper()
	eval := rules.New(answers.NewStore(recorded...), metadataOf(md))
	path, err := Build(context.Background(), survey, eval)
	require.NoError(t, err)
	return path
}

func TestBuild_RepeatingHousehold(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.HouseholdHCL)

	path := build(t, survey, nil,
		testutil.Answer("household-composition", 0, "household-composition", "first-name", 0, "Joe"),
		testutil.Answer("household-composition", 0, "household-composition", "first-name", 1, "Sophie"),
	)

	testutil.RequirePath(t, []location.Location{
		loc("household-composition", 0, "household-composition"),
		loc("repeating-group", 0, "repeating-block-1"),
		loc("repeating-group", 0, "repeating-block-2"),
		loc("repeating-group", 1, "repeating-block-1"),
		loc("repeating-group", 1, "repeating-block-2"),
	}, path)
}

func TestBuild_RepeatingGroupWithoutAnswersIsEmpty(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.HouseholdHCL)

	testutil.RequirePath(t, []location.Location{
		loc("household-composition", 0, "household-composition"),
	}, build(t, survey, nil))
}

func TestBuild_Deterministic(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.HouseholdHCL)
	recorded := []answers.Answer{
		testutil.Answer("household-composition", 0, "household-composition", "first-name", 0, "Joe"),
		testutil.Answer("household-composition", 0, "household-composition", "first-name", 1, "Sophie"),
	}

	first := build(t, survey, nil, recorded...)
	second := build(t, survey, nil, recorded...)
	testutil.RequirePath(t, first, second)
}

func TestBuild_ConditionalBranch(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.StarWarsHCL)

	testCases := []struct {
		side string
		want []location.Location
	}{
		{
			side: "Light Side",
			want: []location.Location{
				loc("choose-side", 0, "choose-your-side-block"),
				loc("light-side", 0, "light-side-pick-character-ship"),
				loc("trivia", 0, "star-wars-trivia"),
				loc("trivia", 0, "summary"),
			},
		},
		{
			side: "Dark Side",
			want: []location.Location{
				loc("choose-side", 0, "choose-your-side-block"),
				loc("dark-side", 0, "dark-side-pick-character-ship"),
				loc("trivia", 0, "star-wars-trivia"),
				loc("trivia", 0, "summary"),
			},
		},
		{
			side: "I prefer Star Trek",
			want: []location.Location{
				loc("choose-side", 0, "choose-your-side-block"),
				loc("dark-side", 0, "dark-side-pick-character-ship"),
				loc("trivia", 0, "star-wars-trivia"),
				loc("trivia", 0, "summary"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.side, func(t *testing.T) {
			path := build(t, survey, nil,
				testutil.Answer("choose-side", 0, "choose-your-side-block", "choose-your-side-answer", 0, tc.side),
			)
			testutil.RequirePath(t, tc.want, path)
		})
	}
}

func TestBuild_MetadataBranch(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.MetadataRoutingHCL)

	withFlag := build(t, survey, map[string]any{"variant_flags": map[string]any{"flag_1": true}})
	testutil.RequirePath(t, []location.Location{
		loc("group", 0, "block1"),
		loc("group", 0, "block3"),
	}, withFlag)

	withoutFlag := build(t, survey, map[string]any{"variant_flags": map[string]any{}})
	testutil.RequirePath(t, []location.Location{
		loc("group", 0, "block1"),
		loc("group", 0, "block2"),
		loc("group", 0, "block3"),
	}, withoutFlag)
}

func TestBuild_Skips(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.SkipsHCL)
	skipEnabled := map[string]any{"variant_flags": map[string]any{"skip_enabled": true}}
	gate := func(answerID, value string) answers.Answer {
		return testutil.Answer("gate", 0, "gate-block", answerID, 0, value)
	}

	testCases := []struct {
		name     string
		md       map[string]any
		recorded []answers.Answer
		want     []location.Location
	}{
		{
			name: "nothing skipped",
			want: []location.Location{
				loc("gate", 0, "gate-block"),
				loc("skippable", 0, "skippable-block"),
				loc("partial", 0, "maybe-skipped"),
				loc("partial", 0, "summary"),
				loc("last", 0, "last-block"),
			},
		},
		{
			name:     "group skipped when every condition holds",
			md:       skipEnabled,
			recorded: []answers.Answer{gate("skip-next", "Yes")},
			want: []location.Location{
				loc("gate", 0, "gate-block"),
				loc("partial", 0, "maybe-skipped"),
				loc("partial", 0, "summary"),
				loc("last", 0, "last-block"),
			},
		},
		{
			name:     "group kept when one condition fails",
			recorded: []answers.Answer{gate("skip-next", "Yes")},
			want: []location.Location{
				loc("gate", 0, "gate-block"),
				loc("skippable", 0, "skippable-block"),
				loc("partial", 0, "maybe-skipped"),
				loc("partial", 0, "summary"),
				loc("last", 0, "last-block"),
			},
		},
		{
			// A group that is not skipped keeps its summary even when its
			// only ordinary block is.
			name:     "first block skipped keeps the summary",
			recorded: []answers.Answer{gate("skip-first-block", "Yes")},
			want: []location.Location{
				loc("gate", 0, "gate-block"),
				loc("skippable", 0, "skippable-block"),
				loc("partial", 0, "summary"),
				loc("last", 0, "last-block"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.RequirePath(t, tc.want, build(t, survey, tc.md, tc.recorded...))
		})
	}
}

func TestBuild_RepeatRules(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.RepeatsHCL)
	household := func(answerID string, answerInstance int, value any) answers.Answer {
		return testutil.Answer("household", 0, "household-block", answerID, answerInstance, value)
	}

	t.Run("answer_value with framing blocks", func(t *testing.T) {
		path := build(t, survey, nil, household("household-count", 0, 2))
		testutil.RequirePath(t, []location.Location{
			loc("household", 0, "household-block"),
			loc("person", 0, "introduction"),
			loc("person", 0, "person-details"),
			loc("person", 1, "person-details"),
			loc("person", 0, "summary"),
		}, path)
	})

	t.Run("answer_count_minus_one", func(t *testing.T) {
		path := build(t, survey, nil,
			household("first-name", 0, "Joe"),
			household("first-name", 1, "Sophie"),
			household("first-name", 2, "Jim"),
		)
		testutil.RequirePath(t, []location.Location{
			loc("household", 0, "household-block"),
			loc("visitor", 0, "visitor-details"),
			loc("visitor", 1, "visitor-details"),
		}, path)
	})

	t.Run("zero instances contribute nothing", func(t *testing.T) {
		path := build(t, survey, nil, household("household-count", 0, "not a number"))
		testutil.RequirePath(t, []location.Location{
			loc("household", 0, "household-block"),
		}, path)
	})

	t.Run("count is clamped", func(t *testing.T) {
		eval := rules.New(answers.NewStore(household("household-count", 0, 500)), metadataOf(nil), rules.WithMaxRepeatInstances(3))
		path, err := Build(context.Background(), survey, eval)
		require.NoError(t, err)
		assert.Len(t, path, 1+1+3+1)
	})
}

func TestBuild_ReentrantRouting(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.HouseholdListHCL)

	t.Run("default path", func(t *testing.T) {
		testutil.RequirePath(t, []location.Location{
			loc("household", 0, "list-collector"),
			loc("household", 0, "household-summary"),
			loc("confirm-household", 0, "confirm-household"),
			loc("finish", 0, "final-interstitial"),
			loc("finish", 0, "summary"),
		}, build(t, survey, nil))
	})

	t.Run("block rule back to the list collector", func(t *testing.T) {
		path := build(t, survey, nil, testutil.Answer("household", 0, "list-collector", "anyone-else", 0, "Yes"))
		testutil.RequirePath(t, []location.Location{
			loc("household", 0, "list-collector"),
			loc("household", 0, "household-summary"),
			loc("household", 0, "list-collector"),
		}, path)
	})

	t.Run("group rule back to the household", func(t *testing.T) {
		path := build(t, survey, nil, testutil.Answer("confirm-household", 0, "confirm-household", "household-correct", 0, "No"))
		testutil.RequirePath(t, []location.Location{
			loc("household", 0, "list-collector"),
			loc("household", 0, "household-summary"),
			loc("confirm-household", 0, "confirm-household"),
			loc("household", 0, "list-collector"),
		}, path)
	})
}

func TestWalk_StopsEarly(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.StarWarsHCL)
	eval := rules.New(answers.NewStore(), metadataOf(nil))

	var got []location.Location
	for l, err := range Walk(context.Background(), survey, eval) {
		require.NoError(t, err)
		got = append(got, l)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
}

func TestWalk_Cancelled(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.StarWarsHCL)
	eval := rules.New(answers.NewStore(), metadataOf(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, survey, eval)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBuild_LogsDecisions(t *testing.T) {
	survey := testutil.LoadSurvey(t, testutil.HouseholdHCL)
	buf := &testutil.SafeBuffer{}
	eval := rules.New(answers.NewStore(
		testutil.Answer("household-composition", 0, "household-composition", "first-name", 0, "Joe"),
	), metadataOf(nil))

	_, err := Build(testutil.Context(t, buf), survey, eval)
	require.NoError(t, err)
	testutil.AssertLogged(t, buf, `msg="Group repeats."`)
	testutil.AssertLogged(t, buf, "instances=1")
}
