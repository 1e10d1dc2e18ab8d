package sampler

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"testing"
)

func fakeRunner(outputs map[string]string, errs map[string]error) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if err, ok := errs[name]; ok {
			return nil, err
		}
		return []byte(outputs[name]), nil
	}
}

func TestNewProcessProbe_EmptyCommand(t *testing.T) {
	if _, err := NewProcessProbe("  ", ""); err == nil {
		t.Error("expected error for empty probe command")
	}
}

func TestProcessProbe_Active(t *testing.T) {
	probe, err := NewProcessProbe("getpid", "gettitle")
	if err != nil {
		t.Fatal(err)
	}
	probe.WithRunner(fakeRunner(map[string]string{
		"getpid":   strconv.Itoa(os.Getpid()) + "\n",
		"gettitle": "main.go - trackit\n",
	}, nil))

	info, err := probe.Active(context.Background())
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if info == nil {
		t.Fatal("expected window info for the test process")
	}
	if info.PID != int32(os.Getpid()) || info.ProcessName == "" {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Title != "main.go - trackit" {
		t.Errorf("title = %q", info.Title)
	}
}

func TestProcessProbe_NoWindow(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		err     error
		wantErr bool
	}{
		{"probe exits non-zero", "", &exec.ExitError{}, false},
		{"empty output", "", nil, false},
		{"garbage output", "not-a-pid", nil, false},
		{"missing binary", "", errors.New("exec: not found"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe, _ := NewProcessProbe("getpid", "")
			errs := map[string]error{}
			if tt.err != nil {
				errs["getpid"] = tt.err
			}
			probe.WithRunner(fakeRunner(map[string]string{"getpid": tt.output}, errs))

			info, err := probe.Active(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Active() error = %v, wantErr %v", err, tt.wantErr)
			}
			if info != nil {
				t.Errorf("expected nil info, got %+v", info)
			}
		})
	}
}

func TestHostSampler_Snapshot(t *testing.T) {
	snap, err := NewHostSampler().Snapshot(context.Background())
	if err != nil {
		t.Skipf("host metrics unavailable: %v", err)
	}
	if snap.CPUCount <= 0 || snap.MemTotal == 0 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.SampledAt.IsZero() {
		t.Error("expected sample time")
	}
}
