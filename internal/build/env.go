package build

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	// These flags override values in build env.
	gitCommitFlag = flag.String("git-commit", "", `Overrides git commit hash embedded into executables`)
	gitDateFlag   = flag.String("git-date", "", `Overrides git commit date embedded into executables`)
)

// Environment contains metadata provided by the build environment.
type Environment struct {
	Commit string
	Date   string
}

func (env Environment) String() string {
	return fmt.Sprintf("commit=%s date=%s", env.Commit, env.Date)
}

// Env returns metadata about the current build, taken from the flags, the
// GIT_COMMIT and GIT_DATE variables, or the local repository.
func Env() Environment {
	env := Environment{
		Commit: firstNonEmpty(*gitCommitFlag, os.Getenv("GIT_COMMIT")),
		Date:   firstNonEmpty(*gitDateFlag, os.Getenv("GIT_DATE")),
	}
	if env.Commit == "" {
		env.Commit = RunGit("rev-parse", "HEAD")
	}
	if env.Commit != "" && env.Date == "" {
		env.Date = commitDate(RunGit("show", "-s", "--format=%ct", env.Commit))
	}
	return env
}

// commitDate formats a unix timestamp as yyyymmdd.
func commitDate(timestamp string) string {
	sec, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ""
	}
	return time.Unix(sec, 0).UTC().Format("20060102")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
