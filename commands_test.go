package main

import (
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/fx"

	"github.com/robalobadob/emojile/internal/catalog"
)

func TestParseInitFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"defaults", nil, "", false},
		{"emoji file", []string{"-emojis", "list.tsv"}, "list.tsv", false},
		{"stray arg", []string{"extra"}, "", true},
		{"unknown flag", []string{"-nope"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInitFlags(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got.EmojiFile != tt.want {
				t.Errorf("EmojiFile = %q, want %q", got.EmojiFile, tt.want)
			}
		})
	}
}

func useTempDatabase(t *testing.T) {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "emojile.db"))
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("LOG_LEVEL", "disabled")
}

func TestRunOnceMigrates(t *testing.T) {
	useTempDatabase(t)
	if err := runOnce(fx.Invoke(runMigrate)); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func TestRunOnceReturnsCommandError(t *testing.T) {
	useTempDatabase(t)
	boom := errors.New("boom")
	err := runOnce(fx.Invoke(func(*catalog.Initializer) error { return boom }))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestRunOnceInitDB(t *testing.T) {
	useTempDatabase(t)
	if err := runOnce(fx.Supply(initOptions{}), fx.Invoke(runInitDB)); err != nil {
		t.Fatalf("init-db: %v", err)
	}

	err := runOnce(fx.Supply(initOptions{EmojiFile: filepath.Join(t.TempDir(), "missing.tsv")}), fx.Invoke(runInitDB))
	if err == nil {
		t.Error("expected an error for a missing emoji file")
	}
}
