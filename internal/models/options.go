package models

// Option is a single selectable entry of a fixed option set, keyed by the
// short code stored on the User.
type Option struct {
	Code  string
	Label string
}

// SignupEducationLevels is the education scale offered on the signup and
// game pages.
//
// Note: AnalyticsEducationLevels maps the same stored codes to a different
// five-tier scale. The two sets are intentionally kept separate rather than
// reconciled; whichever page renders a level uses its own set.
var SignupEducationLevels = []Option{
	{Code: "1", Label: "Secondary"},
	{Code: "2", Label: "Undergraduate"},
	{Code: "3", Label: "Graduate"},
}

// AnalyticsEducationLevels is the education scale used by the analytics page.
var AnalyticsEducationLevels = []Option{
	{Code: "1", Label: "Freshman"},
	{Code: "2", Label: "Sophomore"},
	{Code: "3", Label: "Junior"},
	{Code: "4", Label: "Senior"},
	{Code: "5", Label: "Graduate"},
}

// GameExperiences lists the available game experience types.
var GameExperiences = []Option{
	{Code: "1", Label: "Experiential Learning"},
	{Code: "2", Label: "2D"},
	{Code: "3", Label: "Quiz"},
}

// GameModes lists the available game modes.
var GameModes = []Option{
	{Code: "1", Label: "Single Player"},
	{Code: "2", Label: "Multi-player"},
}

// LabelFor returns the label for code in the given option set, or the code
// itself when it is not part of the set.
func LabelFor(options []Option, code string) string {
	for _, o := range options {
		if o.Code == code {
			return o.Label
		}
	}
	return code
}
