package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizledger/internal/config"
	"bizledger/internal/core"
	"bizledger/internal/finance"
	applog "bizledger/internal/log"
	"bizledger/internal/storage"
	"bizledger/internal/tasks"
)

// resetFlags restores every flag of the tree; cobra keeps values between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	teardown()
	app = appState{}
	return out.String(), err
}

func useFileBackend(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LEDGER_BACKEND", config.BackendFile)
	t.Setenv("LEDGER_DATA_DIR", dir)
	t.Setenv("LEDGER_SEED_SAMPLE", "false")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("AMQP_URL", "")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	return dir
}

// reload opens the stores the commands wrote to.
func reload(t *testing.T, dir string) (*finance.Store, *tasks.Store) {
	t.Helper()
	kv, err := storage.NewFileKV(dir)
	require.NoError(t, err)
	fin, err := finance.Open(kv, finance.Options{Logger: applog.Discard()})
	require.NoError(t, err)
	tsk, err := tasks.Open(kv, tasks.Options{Logger: applog.Discard()})
	require.NoError(t, err)
	return fin, tsk
}

func TestCommandsShareFileBackend(t *testing.T) {
	useFileBackend(t)

	_, err := execute(t, "revenues", "add", "--date", "2025-06-05", "--amount", "500,000", "--category", "제품 판매")
	require.NoError(t, err)
	_, err = execute(t, "expenses", "add", "--date", "2025-06-07", "--amount", "200000", "--category", "기타")
	require.NoError(t, err)

	out, err := execute(t, "report", "--month", "2025-06")
	require.NoError(t, err)
	assert.Contains(t, out, "₩500,000")
	assert.Contains(t, out, "₩300,000")
	assert.Contains(t, out, "60.0%")

	out, err = execute(t, "months")
	require.NoError(t, err)
	assert.Contains(t, out, "* 2025-06")

	_, err = execute(t, "categories", "delete", "거래처")
	assert.True(t, errors.Is(err, finance.ErrReservedCategory), "got %v", err)

	_, err = execute(t, "expenses", "add", "--date", "2025-06-08", "--amount", "1000", "--category", "없는 카테고리")
	assert.True(t, errors.Is(err, finance.ErrUnknownCategory), "got %v", err)

	out, err = execute(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "Report 2025-06")
}

func TestVersionSkipsSetup(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "nonsense")
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bizledger")
}

func TestAddCommandsRejectInvalidInput(t *testing.T) {
	dir := useFileBackend(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"blank task title", []string{"tasks", "add", "  "}, core.ErrEmptyTitle},
		{"unknown task priority", []string{"tasks", "add", "정산", "--priority", "urgent"}, core.ErrInvalidPriority},
		{"unknown task status", []string{"tasks", "add", "정산", "--status", "bogus"}, core.ErrInvalidStatus},
		{"blank vendor name", []string{"vendors", "add", "   "}, core.ErrEmptyName},
		{"zero expense amount", []string{"expenses", "add", "--date", "2025-06-01", "--amount", "0", "--category", "기타"}, core.ErrInvalidAmount},
		{"zero revenue amount", []string{"revenues", "add", "--date", "2025-06-01", "--amount", "0", "--category", "기타"}, core.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	fin, tsk := reload(t, dir)
	snap := fin.Snapshot()
	assert.Empty(t, tsk.Tasks())
	assert.Empty(t, snap.Vendors)
	assert.Empty(t, snap.Expenses)
	assert.Empty(t, snap.Revenues)
}

func TestUpdateCommandsRejectInvalidInput(t *testing.T) {
	dir := useFileBackend(t)

	kv, err := storage.NewFileKV(dir)
	require.NoError(t, err)
	fin, err := finance.Open(kv, finance.Options{})
	require.NoError(t, err)
	vendor, err := fin.AddVendor(core.Vendor{Name: "국내 공급업체", Category: "주요 거래처"})
	require.NoError(t, err)
	tsk, err := tasks.Open(kv, tasks.Options{})
	require.NoError(t, err)
	task, err := tsk.AddTask(core.Task{Title: "재고 확인", Priority: core.PriorityLow, Status: core.StatusPending})
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"blank task title", []string{"tasks", "update", task.ID, "--title", " "}, core.ErrEmptyTitle},
		{"unknown task priority", []string{"tasks", "update", task.ID, "--priority", "urgent"}, core.ErrInvalidPriority},
		{"unknown task status", []string{"tasks", "update", task.ID, "--status", "bogus"}, core.ErrInvalidStatus},
		{"blank vendor name", []string{"vendors", "update", vendor.ID, "--name", ""}, core.ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	fin, tsk = reload(t, dir)
	got, ok := tsk.Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, task.Priority, got.Priority)
	assert.Equal(t, task.Status, got.Status)
	v, ok := fin.Vendor(vendor.ID)
	require.True(t, ok)
	assert.Equal(t, "국내 공급업체", v.Name)
}
