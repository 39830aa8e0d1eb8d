package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Surveys  []*surveyBlock  `hcl:"survey,block"`
	Sections []*sectionBlock `hcl:"section,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

type surveyBlock struct {
	ID       string          `hcl:"id,label"`
	Title    string          `hcl:"title,optional"`
	Hub      *hubBlock       `hcl:"hub,block"`
	Sections []*sectionBlock `hcl:"section,block"`
	DefRange hcl.Range       `hcl:",def_range"`
}

type hubBlock struct {
	Enabled          bool     `hcl:"enabled,optional"`
	RequiredSections []string `hcl:"required_sections,optional"`
}

type sectionBlock struct {
	ID     string        `hcl:"id,label"`
	Title  string        `hcl:"title,optional"`
	Groups []*groupBlock `hcl:"group,block"`
}

type groupBlock struct {
	ID             string              `hcl:"id,label"`
	Title          string              `hcl:"title,optional"`
	Introduction   bool                `hcl:"introduction,optional"`
	Summary        bool                `hcl:"summary,optional"`
	NavigationName []string            `hcl:"navigation_name,optional"`
	Repeat         *repeatBlock        `hcl:"repeat,block"`
	SkipConditions []*conditionBlock   `hcl:"skip_condition,block"`
	RoutingRules   []*routingRuleBlock `hcl:"routing_rule,block"`
	Blocks         []*blockBlock       `hcl:"block,block"`
	DefRange       hcl.Range           `hcl:",def_range"`
}

type blockBlock struct {
	ID             string              `hcl:"id,label"`
	Type           *string             `hcl:"type,optional"`
	Title          string              `hcl:"title,optional"`
	Questions      []*questionBlock    `hcl:"question,block"`
	SkipConditions []*conditionBlock   `hcl:"skip_condition,block"`
	RoutingRules   []*routingRuleBlock `hcl:"routing_rule,block"`
}

type questionBlock struct {
	ID      string         `hcl:"id,label"`
	Title   string         `hcl:"title,optional"`
	Answers []*answerBlock `hcl:"answer,block"`
}

type answerBlock struct {
	ID    string `hcl:"id,label"`
	Type  string `hcl:"type,optional"`
	Label string `hcl:"label,optional"`
}

type repeatBlock struct {
	Type          string    `hcl:"type,label"`
	Answer        string    `hcl:"answer"`
	GroupInstance *int      `hcl:"group_instance,optional"`
	DefRange      hcl.Range `hcl:",def_range"`
}

type routingRuleBlock struct {
	GotoGroup *string           `hcl:"goto_group,optional"`
	GotoBlock *string           `hcl:"goto_block,optional"`
	When      []*conditionBlock `hcl:"when,block"`
	DefRange  hcl.Range         `hcl:",def_range"`
}

// conditionBlock is shared by `when` and `skip_condition`. Exactly one of
// answer, metadata and flag names the subject; the operator attributes
// that apply depend on it.
type conditionBlock struct {
	Answer        *string `hcl:"answer,optional"`
	GroupInstance *int    `hcl:"group_instance,optional"`
	Metadata      *string `hcl:"metadata,optional"`
	Flag          *string `hcl:"flag,optional"`

	Equals      hcl.Expression `hcl:"equals,optional"`
	NotEquals   hcl.Expression `hcl:"not_equals,optional"`
	Contains    hcl.Expression `hcl:"contains,optional"`
	NotContains hcl.Expression `hcl:"not_contains,optional"`
	Set         *bool          `hcl:"set,optional"`

	DefRange hcl.Range `hcl:",def_range"`
}
