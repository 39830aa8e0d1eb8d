package hcl_adapter_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/surveynav/internal/hcl_adapter"
	"github.com/specialistvlad/surveynav/internal/schema"
	"github.com/specialistvlad/surveynav/internal/testutil"
)

func TestLoad_StarWars(t *testing.T) {
	s := testutil.LoadSurvey(t, testutil.StarWarsHCL)

	assert.Equal(t, "star_wars", s.ID)
	assert.Equal(t, "Star Wars", s.Title)
	assert.Equal(t, []string{"star-wars"}, s.SectionIDs())
	require.Len(t, s.Groups(), 4)

	choose, ok := s.Group("choose-side")
	require.True(t, ok)
	require.Len(t, choose.RoutingRules, 2)
	assert.Equal(t, "light-side", choose.RoutingRules[0].Goto.Group)
	assert.Equal(t, []schema.Condition{schema.AnswerEquals{
		Answer: schema.AnswerRef{
			GroupID:       "choose-side",
			BlockID:       "choose-your-side-block",
			AnswerID:      "choose-your-side-answer",
			GroupInstance: -1,
		},
		Values: []string{"Light Side"},
	}}, choose.RoutingRules[0].When)
	assert.Empty(t, choose.RoutingRules[1].When)

	trivia, ok := s.Group("trivia")
	require.True(t, ok)
	require.Len(t, trivia.Blocks, 2)
	assert.Equal(t, schema.BlockQuestion, trivia.Blocks[0].Type)
	assert.Equal(t, schema.SummaryBlockID, trivia.Blocks[1].ID)
	assert.Equal(t, schema.BlockSummary, trivia.Blocks[1].Type)
}

func TestLoad_RepeatAndFraming(t *testing.T) {
	s := testutil.LoadSurvey(t, testutil.RepeatsHCL)

	person, ok := s.Group("person")
	require.True(t, ok)
	assert.True(t, person.HasIntroduction())
	assert.True(t, person.Blocks[len(person.Blocks)-1].Type.IsTrailing())
	assert.Equal(t, schema.AnswerValue{Answer: schema.AnswerRef{
		GroupID:       "household",
		BlockID:       "household-block",
		AnswerID:      "household-count",
		GroupInstance: -1,
	}}, person.Repeat)

	visitor, _ := s.Group("visitor")
	assert.Equal(t, schema.RepeatAnswerCountMinusOne, visitor.Repeat.Tag())
}

func TestLoad_Conditions(t *testing.T) {
	const src = `
survey "conditions" {
  section "s" {
    group "g" {
      block "b" {
        question "q" {
          answer "colour" {
            type = "Radio"
          }
          answer "toppings" {
            type = "Checkbox"
          }
        }
      }

      routing_rule {
        goto_group = "h"
        when {
          answer     = "colour"
          not_equals = ["Red", "Blue"]
        }
        when {
          answer         = "toppings"
          group_instance = 0
          contains       = "Ham"
        }
        when {
          answer       = "toppings"
          not_contains = "Olives"
        }
        when {
          answer = "colour"
          set    = true
        }
        when {
          flag   = "flag_1"
          equals = false
        }
        when {
          metadata = "region_code"
          equals   = ["GB-ENG", "GB-WLS"]
        }
      }
    }

    group "h" {
      block "c" {
        type = "Confirmation"
      }
    }
  }
}
`
	s := testutil.LoadSurvey(t, src)
	g, _ := s.Group("g")
	require.Len(t, g.RoutingRules, 1)

	ref := func(answerID string, instance int) schema.AnswerRef {
		return schema.AnswerRef{GroupID: "g", BlockID: "b", AnswerID: answerID, GroupInstance: instance}
	}
	assert.Equal(t, []schema.Condition{
		schema.AnswerEquals{Answer: ref("colour", -1), Values: []string{"Red", "Blue"}, Negate: true},
		schema.AnswerContains{Answer: ref("toppings", 0), Value: "Ham"},
		schema.AnswerContains{Answer: ref("toppings", -1), Value: "Olives", Negate: true},
		schema.AnswerSet{Answer: ref("colour", -1)},
		schema.MetadataFlag{Flag: "flag_1", Want: false},
		schema.MetadataEquals{Key: "region_code", Values: []string{"GB-ENG", "GB-WLS"}},
	}, g.RoutingRules[0].When)
}

func TestLoad_Hub(t *testing.T) {
	s := testutil.LoadSurvey(t, testutil.HubHCL)
	assert.Equal(t, schema.Hub{Enabled: true, RequiredSections: []string{"about-you"}}, s.Hub)

	about, _ := s.Section("about-you")
	_, summary, ok := about.SummaryBlock()
	require.True(t, ok)
	assert.Equal(t, schema.BlockSectionSummary, summary.Type)
}

func TestLoad_SectionsAcrossFiles(t *testing.T) {
	s, err := testutil.LoadSurveyFiles(t, map[string]string{
		"a_survey.hcl": `
survey "split" {
  section "first" {
    group "one" {
      block "one-block" {}
    }
  }
}`,
		"b_more/second.hcl": `
section "second" {
  group "two" {
    block "two-block" {}
  }
}`,
		"notes.txt": "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, s.SectionIDs())
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"s.hcl": `survey "x" {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "no survey",
			files: map[string]string{"s.hcl": `
section "s" {
  group "g" {
    block "b" {}
  }
}`},
			wantErr: "no survey block found",
		},
		{
			name: "duplicate survey",
			files: map[string]string{
				"a.hcl": `survey "x" {}`,
				"b.hcl": `survey "y" {}`,
			},
			wantErr: "Duplicate survey block",
		},
		{
			name: "unknown repeat tag",
			files: map[string]string{"s.hcl": `
survey "x" {
  section "s" {
    group "g" {
      repeat "answer_sum" {
        answer = "a"
      }
      block "b" {
        question "q" {
          answer "a" {}
        }
      }
    }
  }
}`},
			wantErr: "Unknown repeat rule",
		},
		{
			name: "routing rule with two targets",
			files: map[string]string{"s.hcl": `
survey "x" {
  section "s" {
    group "g" {
      block "b" {
        routing_rule {
          goto_block = "b"
          goto_group = "g"
        }
      }
    }
  }
}`},
			wantErr: "exactly one of goto_group and goto_block",
		},
		{
			name: "condition without subject",
			files: map[string]string{"s.hcl": `
survey "x" {
  section "s" {
    group "g" {
      skip_condition {
        equals = "y"
      }
      block "b" {}
    }
  }
}`},
			wantErr: "exactly one of answer, metadata and flag",
		},
		{
			name: "condition with two operators",
			files: map[string]string{"s.hcl": `
survey "x" {
  section "s" {
    group "g" {
      block "b" {
        question "q" {
          answer "a" {}
        }
        skip_condition {
          answer     = "a"
          equals     = "y"
          not_equals = "n"
        }
      }
    }
  }
}`},
			wantErr: "exactly one of equals, not_equals, contains, not_contains and set",
		},
		{
			name: "unknown goto target",
			files: map[string]string{"s.hcl": `
survey "x" {
  section "s" {
    group "g" {
      block "b" {
        routing_rule {
          goto_group = "nowhere"
        }
      }
    }
  }
}`},
			wantErr: "invalid survey schema",
		},
		{
			name:    "unsupported attribute",
			files:   map[string]string{"s.hcl": `survey "x" { colour = "red" }`},
			wantErr: "failed to decode HCL file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testutil.LoadSurveyFiles(t, tc.files)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := hcl_adapter.NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	_, err := hcl_adapter.NewLoader().Load(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "no .hcl files found")
}
