package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const (
	configFlag = "config"
	dateLayout = "2006-01-02"
)

// dateValue is a pflag.Value holding an optional YYYY-MM-DD date.
type dateValue struct {
	t **time.Time
}

func newDateValue(p **time.Time) *dateValue {
	return &dateValue{t: p}
}

func (d *dateValue) String() string {
	if d.t == nil || *d.t == nil {
		return ""
	}
	return (*d.t).Format(dateLayout)
}

func (d *dateValue) Set(s string) error {
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	*d.t = &parsed
	return nil
}

func (d *dateValue) Type() string { return "date" }

// ConfigPathFromArgs extracts --config from raw arguments so configuration
// can be loaded before the command tree is built. Other flags are ignored.
func ConfigPathFromArgs(args []string) string {
	fs := pflag.NewFlagSet("releaseplan", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.Usage = func() {}
	fs.BoolP("help", "h", false, "")
	path := fs.String(configFlag, "", "")
	_ = fs.Parse(args)
	return *path
}
