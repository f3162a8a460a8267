package snapshotter

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostsnap/hostsnap/pkg/errors"
	"github.com/hostsnap/hostsnap/pkg/plan"
	"github.com/hostsnap/hostsnap/pkg/session"
)

type fakeSession struct {
	results map[string]*session.Result
	calls   []string
}

func (f *fakeSession) Run(_ context.Context, command string) (*session.Result, error) {
	f.calls = append(f.calls, command)
	if res, ok := f.results[command]; ok {
		return res, nil
	}
	return &session.Result{ExitCode: 1, Stderr: "not scripted: " + command}, nil
}

func (f *fakeSession) RunVerified(ctx context.Context, command string) (*session.Result, error) {
	res, err := f.Run(ctx, command)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, errors.NewCommandError(command, res.ExitCode, res.Stderr)
	}
	return res, nil
}

func (f *fakeSession) Close() error { return nil }

// blockingSession hangs every command until the context is canceled, the
// way a long-running target command looks to the orchestrator.
type blockingSession struct{}

func (b *blockingSession) Run(ctx context.Context, _ string) (*session.Result, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingSession) RunVerified(ctx context.Context, command string) (*session.Result, error) {
	return b.Run(ctx, command)
}

func (b *blockingSession) Close() error { return nil }

func testPlan() plan.Plan {
	return plan.Plan{
		{
			Name: "cpu",
			Plan: plan.CollectionPlan{
				Commands: []plan.CommandCapture{{Command: "lscpu", Dirname: "lscpu"}},
				InlineFiles: []plan.FileCapture{
					{Command: "dump-sys", Dirname: "sys", Filename: "sys.txt", Separator: "--- "},
				},
				MSRs: &plan.RegisterBatch{
					Addresses:  []uint64{0x770},
					Separator1: ":",
					Separator2: "|",
					Dirname:    "msr",
					Filename:   "msr.txt",
				},
			},
		},
		{
			Name: "aspm",
			Plan: plan.CollectionPlan{
				Commands: []plan.CommandCapture{{Command: "lspci", Dirname: "lspci"}},
			},
		},
	}
}

func happySession() *fakeSession {
	return &fakeSession{results: map[string]*session.Result{
		"lscpu":            {Stdout: "cpu info\n"},
		"dump-sys":         {Stdout: "--- /sys/a\n1\n"},
		"lscpu -p=cpu":     {Stdout: "#c\n0\n"},
		"rdmsr 0x770 -p 0": {Stdout: "5\n"},
		"lspci":            {Stdout: "pci devices\n"},
	}}
}

func TestSnapshotterFullRun(t *testing.T) {
	outRoot := filepath.Join(t.TempDir(), "host1")
	s := &Snapshotter{Session: happySession(), OutRoot: outRoot}

	require.NoError(t, s.Run(context.Background(), testPlan()))

	// Snapshot tree layout.
	for _, rel := range []string{
		"cpu/lscpu/stdout.txt",
		"cpu/lscpu/stderr.txt",
		"cpu/sys/sys.txt",
		"cpu/msr/msr.txt",
		"aspm/lspci/stdout.txt",
		"cpu.yaml",
		"aspm.yaml",
	} {
		_, err := os.Stat(filepath.Join(outRoot, rel))
		assert.NoError(t, err, "expected %s in snapshot tree", rel)
	}

	msr, err := os.ReadFile(filepath.Join(outRoot, "cpu/msr/msr.txt"))
	require.NoError(t, err)
	assert.Equal(t, "/dev/cpu/0/msr:1904|5 \n", string(msr))
}

func TestSnapshotterAbortsOnCommandFailure(t *testing.T) {
	// Scenario: the second module's command fails. The first module's
	// files and manifest stay on disk; the failing module gets no
	// manifest.
	sess := happySession()
	delete(sess.results, "lspci")

	outRoot := filepath.Join(t.TempDir(), "host1")
	s := &Snapshotter{Session: sess, OutRoot: outRoot}

	err := s.Run(context.Background(), testPlan())
	require.Error(t, err)

	var cmdErr *errors.CommandError
	require.True(t, stderrors.As(err, &cmdErr))
	assert.Equal(t, "lspci", cmdErr.Command)

	// Completed module remains.
	_, statErr := os.Stat(filepath.Join(outRoot, "cpu.yaml"))
	assert.NoError(t, statErr)

	// No manifest for the aborted module.
	_, statErr = os.Stat(filepath.Join(outRoot, "aspm.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSnapshotterModuleOrder(t *testing.T) {
	sess := happySession()
	outRoot := filepath.Join(t.TempDir(), "host1")
	s := &Snapshotter{Session: sess, OutRoot: outRoot}

	require.NoError(t, s.Run(context.Background(), testPlan()))

	// Commands, then inline files, then topology + register reads, then
	// the next module.
	want := []string{"lscpu", "dump-sys", "lscpu -p=cpu", "rdmsr 0x770 -p 0", "lspci"}
	assert.Equal(t, want, sess.calls)
}

func TestSnapshotterHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outRoot := filepath.Join(t.TempDir(), "host1")
	s := &Snapshotter{Session: happySession(), OutRoot: outRoot}

	err := s.Run(ctx, testPlan())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
}

func TestSnapshotterInterruptMidCommand(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	outRoot := filepath.Join(t.TempDir(), "host1")
	s := &Snapshotter{Session: &blockingSession{}, OutRoot: outRoot}

	start := time.Now()
	err := s.Run(ctx, testPlan())

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
	assert.Less(t, time.Since(start), 10*time.Second,
		"the run must unwind as soon as the blocked command is canceled")
}
