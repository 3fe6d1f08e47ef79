package main

import "fmt"

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	fmt.Fprintf(stdoutWriter, "%s version %s\n", v.r.Program(), version)
	if commit != "" {
		fmt.Fprintf(stdoutWriter, "commit %s\n", commit)
	}
	if date != "" {
		fmt.Fprintf(stdoutWriter, "built %s\n", date)
	}
	return nil
}
