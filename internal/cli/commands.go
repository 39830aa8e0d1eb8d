package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/surveynav/internal/location"
)

func newPathCommand(opts *rootOptions) *cobra.Command {
	var (
		routing   bool
		sectionID string
		instance  int
		withURLs  bool
	)

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the respondent's path through the survey",
		Long: `Print every location on the respondent's path, in order.

With --routing, --section or --instance the routing path is printed instead:
introduction and summary screens are dropped and the path can be narrowed to
one section and one repeat instance.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			nav := a.Navigator()

			var path []location.Location
			if routing || sectionID != "" || instance >= 0 {
				path, err = nav.RoutingPath(a.Context(), sectionID, instance)
			} else {
				path, err = nav.LocationPath(a.Context())
			}
			if err != nil {
				return engineError(err)
			}

			md := a.Snapshot().Metadata.Raw()
			for _, loc := range path {
				if withURLs {
					printf(cmd, "%s\t%s\n", loc, loc.URL(md))
					continue
				}
				printf(cmd, "%s\n", loc)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&routing, "routing", false, "Drop introduction and summary screens.")
	cmd.Flags().StringVar(&sectionID, "section", "", "Restrict the routing path to one section.")
	cmd.Flags().IntVar(&instance, "instance", -1, "Restrict the routing path to one repeat instance.")
	cmd.Flags().BoolVar(&withURLs, "urls", false, "Print the questionnaire URL next to each location.")
	return cmd
}

type stepDirection int

const (
	stepNext stepDirection = iota
	stepPrevious
)

func newStepCommand(opts *rootOptions, dir stepDirection) *cobra.Command {
	use, short, edge := "next LOCATION", "Print the location after LOCATION", "end"
	if dir == stepPrevious {
		use, short, edge = "previous LOCATION", "Print the location before LOCATION", "start"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := parseLocationArg(args[0])
			if err != nil {
				return err
			}
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			nav := a.Navigator()

			var (
				loc location.Location
				ok  bool
			)
			if dir == stepNext {
				loc, ok, err = nav.NextLocation(a.Context(), cur)
			} else {
				loc, ok, err = nav.PreviousLocation(a.Context(), cur)
			}
			if err != nil {
				return engineError(err)
			}
			if !ok {
				printf(cmd, "%s is at the %s of the path\n", cur, edge)
				return nil
			}
			printf(cmd, "%s\n", loc)
			return nil
		},
	}
}

func newNavCommand(opts *rootOptions) *cobra.Command {
	var (
		groupID  string
		instance int
	)

	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Print the navigation summary shown beside the questionnaire",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			entries, err := a.Navigator().FrontEndNavigation(a.Context(), completedLocations(a.Snapshot().Progress), groupID, instance)
			if err != nil {
				return engineError(err)
			}
			renderNavigation(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "Group the respondent is currently in.")
	cmd.Flags().IntVar(&instance, "instance", 0, "Repeat instance the respondent is currently in.")
	return cmd
}

func newHubCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hub",
		Short: "Print hub access, survey completion and section statuses",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			ctx := a.Context()
			r := a.Router()

			canAccess, err := r.CanAccessHub(ctx)
			if err != nil {
				return engineError(err)
			}
			complete, err := r.IsSurveyComplete(ctx)
			if err != nil {
				return engineError(err)
			}
			resume, err := r.FirstIncompleteLocationInSurvey(ctx)
			if err != nil {
				return engineError(err)
			}
			statuses, err := r.SectionStatuses(ctx)
			if err != nil {
				return engineError(err)
			}

			printf(cmd, "Hub accessible:  %s\n", yesNo(canAccess))
			printf(cmd, "Survey complete: %s\n", yesNo(complete))
			printf(cmd, "Resume at:       %s\n", resume)
			renderSectionStatuses(cmd.OutOrStdout(), statuses)
			return nil
		},
	}
}

// parseLocationArg accepts both group/instance/block and questionnaire URLs.
func parseLocationArg(raw string) (location.Location, error) {
	parse := location.Parse
	if strings.HasPrefix(raw, location.URLPrefix+"/") {
		parse = location.ParseURL
	}
	loc, err := parse(raw)
	if err != nil {
		return location.Location{}, usageError("invalid location %q: %s", raw, err)
	}
	return loc, nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
