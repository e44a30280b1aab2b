package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-mediaui/components/mediaapi"
	"github.com/goliatone/go-mediaui/internal/config"
	"github.com/goliatone/go-mediaui/pkg/edit"
	"github.com/goliatone/go-mediaui/pkg/renderers/tui"
)

type scriptedDriver struct {
	inputs    []string
	textAreas []string
	confirms  []bool
	selects   []int
	infos     []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	v := d.confirms[0]
	d.confirms = d.confirms[1:]
	return v, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	if len(d.textAreas) == 0 {
		return "", errors.New("no textarea scripted")
	}
	v := d.textAreas[0]
	d.textAreas = d.textAreas[1:]
	return v, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func (d *scriptedDriver) said(substr string) bool {
	for _, info := range d.infos {
		if strings.Contains(info, substr) {
			return true
		}
	}
	return false
}

func newAPI(t *testing.T) (*mediaapi.Store, string) {
	t.Helper()
	store, err := mediaapi.DefaultStore()
	if err != nil {
		t.Fatalf("default store: %v", err)
	}
	mux := http.NewServeMux()
	if _, err := mediaapi.RegisterRoutes(mux, "", mediaapi.WithStore(store)); err != nil {
		t.Fatalf("register api: %v", err)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return store, srv.URL + "/api"
}

func newTestRunner(apiURL string, driver tui.PromptDriver, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return NewRunner(RunnerConfig{
		Out:    out,
		ErrOut: io.Discard,
		Getenv: func(key string) string {
			if key == config.EnvAPIURL {
				return apiURL
			}
			return ""
		},
		Driver: driver,
	})
}

func TestEdit_SavesThroughAPI(t *testing.T) {
	store, apiURL := newAPI(t)
	driver := &scriptedDriver{
		selects:   []int{choiceEdit, choiceSave},
		inputs:    []string{"Renamed", "CC-BY-4.0"},
		textAreas: []string{"Opening talk of the spring meetup."},
		confirms:  []bool{true},
	}

	if err := newTestRunner(apiURL, driver, nil).App().Run(context.Background(), []string{"mediaui", "edit", "42"}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	if item, _ := store.Item("42"); item.Title != "Renamed" {
		t.Fatalf("title not saved: %q", item.Title)
	}
	if !driver.said(edit.SuccessMessage) || !driver.said("View it at /media/42") {
		t.Fatalf("confirmation missing: %v", driver.infos)
	}
}

func TestEdit_ShowsErrorsAndCancels(t *testing.T) {
	store, apiURL := newAPI(t)
	driver := &scriptedDriver{
		selects:   []int{choiceEdit, choiceSave, choiceCancel},
		inputs:    []string{"", "CC-BY-4.0"},
		textAreas: []string{"Opening talk of the spring meetup."},
		confirms:  []bool{true},
	}

	if err := newTestRunner(apiURL, driver, nil).App().Run(context.Background(), []string{"mediaui", "edit", "42"}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	if !driver.said("This field may not be blank.") {
		t.Fatalf("field error not shown: %v", driver.infos)
	}
	if driver.said(edit.SuccessMessage) {
		t.Fatal("failed save reported success")
	}
	if item, _ := store.Item("42"); item.Title != "Launch keynote" {
		t.Fatalf("rejected title stored: %q", item.Title)
	}
}

func TestEdit_PermissionGate(t *testing.T) {
	_, apiURL := newAPI(t)
	driver := &scriptedDriver{}

	if err := newTestRunner(apiURL, driver, nil).App().Run(context.Background(), []string{"mediaui", "edit", "7"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(driver.infos) != 1 || driver.infos[0] != edit.CannotEditMessage {
		t.Fatalf("expected only the fixed message, got %v", driver.infos)
	}
}

func TestEdit_Errors(t *testing.T) {
	_, apiURL := newAPI(t)
	cases := [][]string{
		{"mediaui", "edit"},
		{"mediaui", "edit", "--fields", "bogus", "42"},
		{"mediaui", "edit", "999"},
	}
	for _, args := range cases {
		err := newTestRunner(apiURL, &scriptedDriver{}, nil).App().Run(context.Background(), args)
		if err == nil {
			t.Fatalf("%v: expected an error", args)
		}
	}
}

func TestConfigCommands(t *testing.T) {
	var out bytes.Buffer
	if err := newTestRunner("", &scriptedDriver{}, &out).App().Run(context.Background(), []string{"mediaui", "config", "show"}); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !bytes.Equal(out.Bytes(), config.Example()) {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	path := filepath.Join(t.TempDir(), "mediaui.yaml")
	if err := newTestRunner("", &scriptedDriver{}, nil).App().Run(context.Background(), []string{"mediaui", "config", "init", path}); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if data, err := os.ReadFile(path); err != nil || !bytes.Equal(data, config.Example()) {
		t.Fatalf("example not written: %v", err)
	}
	if err := newTestRunner("", &scriptedDriver{}, nil).App().Run(context.Background(), []string{"mediaui", "config", "init", path}); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
}

func TestLoopbackURL(t *testing.T) {
	cases := []struct {
		addr net.Addr
		want string
	}{
		{&net.TCPAddr{IP: net.IPv6unspecified, Port: 8080}, "http://127.0.0.1:8080"},
		{&net.TCPAddr{IP: net.IPv4zero, Port: 80}, "http://127.0.0.1:80"},
		{&net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 9000}, "http://10.0.0.1:9000"},
	}
	for _, tc := range cases {
		if got := loopbackURL(tc.addr); got != tc.want {
			t.Fatalf("loopbackURL(%v) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}
