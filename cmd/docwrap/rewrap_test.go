package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"docwrap/internal/driver"
)

func TestProgressEnabled(t *testing.T) {
	cases := []struct {
		value   string
		quiet   bool
		want    bool
		wantErr bool
	}{
		{value: "on", want: true},
		{value: " On ", want: true},
		{value: "on", quiet: true, want: false},
		{value: "off", want: false},
		{value: "off", quiet: true, want: false},
		// "auto" off a terminal (the test process) resolves to false.
		{value: "auto", want: false},
		{value: "", want: false},
		{value: "tui", wantErr: true},
		{value: "yes", wantErr: true},
	}
	for _, tc := range cases {
		got, err := progressEnabled(tc.value, tc.quiet)
		if tc.wantErr {
			if err == nil {
				t.Errorf("progressEnabled(%q, %v) expected an error", tc.value, tc.quiet)
			}
			continue
		}
		if err != nil {
			t.Errorf("progressEnabled(%q, %v) unexpected error: %v", tc.value, tc.quiet, err)
			continue
		}
		if got != tc.want {
			t.Errorf("progressEnabled(%q, %v) = %v, want %v", tc.value, tc.quiet, got, tc.want)
		}
	}
}

func summaryCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func TestReportSummaryCleanRun(t *testing.T) {
	cmd, out, errOut := summaryCommand()
	summary := &driver.Summary{
		Results:   []driver.Result{{Path: "a.py"}},
		Processed: 1,
	}
	if err := reportSummary(cmd, summary, false, false); err != nil {
		t.Fatalf("clean run must not error: %v", err)
	}
	if got := out.String(); got != "Processed 1 files, modified 0 files, 0 errors.\n" {
		t.Fatalf("unexpected stdout:\n%s", got)
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected stderr:\n%s", errOut.String())
	}
}

func TestReportSummaryFailureCarriesOnlyExitCode(t *testing.T) {
	cmd, out, errOut := summaryCommand()
	summary := &driver.Summary{
		Results: []driver.Result{
			{Path: "a.py", Modified: true},
			{Path: "b.py", Err: fmt.Errorf("boom")},
		},
		Processed: 2,
		Modified:  1,
		Errors:    1,
	}
	err := reportSummary(cmd, summary, false, false)
	if !errors.Is(err, errRunFailed) {
		t.Fatalf("expected errRunFailed, got %v", err)
	}
	if !strings.Contains(out.String(), "Modified: a.py") {
		t.Fatalf("missing per-file line:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Processed 2 files, modified 1 files, 1 errors.") {
		t.Fatalf("missing summary line:\n%s", out.String())
	}
	// Stderr carries per-file diagnostics and nothing else; the error value
	// itself must add no extra output.
	if got := errOut.String(); !strings.Contains(got, "b.py: boom") || strings.Count(got, "\n") != 1 {
		t.Fatalf("unexpected stderr:\n%s", got)
	}
}

func TestReportSummaryCheckDiffFails(t *testing.T) {
	cmd, _, _ := summaryCommand()
	summary := &driver.Summary{
		Results:   []driver.Result{{Path: "a.py", Modified: true}},
		Processed: 1,
		Modified:  1,
	}
	if err := reportSummary(cmd, summary, false, true); !errors.Is(err, errRunFailed) {
		t.Fatalf("check mode with a diff must fail: %v", err)
	}
	if err := reportSummary(cmd, summary, false, false); err != nil {
		t.Fatalf("the same summary without --check must pass: %v", err)
	}
}
