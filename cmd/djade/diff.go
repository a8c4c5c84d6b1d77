package main

import (
	"os"
	"os/exec"
)

// diffBytes shells out to the system `diff` tool to produce a unified diff
// between b1 and b2, labelling both sides with path. Mirrors the teacher's
// approach of writing each buffer to a temp file rather than linking a diff
// library.
func diffBytes(b1, b2 []byte, path string) (data []byte, err error) {
	f1, err := os.CreateTemp("", "djade-old-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f1.Name())
	defer f1.Close()

	f2, err := os.CreateTemp("", "djade-new-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f2.Name())
	defer f2.Close()

	if _, err = f1.Write(b1); err != nil {
		return nil, err
	}
	if _, err = f2.Write(b2); err != nil {
		return nil, err
	}

	data, err = exec.Command("diff", "--label=old/"+path, "--label=new/"+path, "-u", f1.Name(), f2.Name()).CombinedOutput()
	if len(data) > 0 {
		// diff exits non-zero when the files differ; that's expected here,
		// not a failure, as long as we got output.
		err = nil
	}
	return data, err
}
