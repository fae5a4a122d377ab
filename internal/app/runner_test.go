package app

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/duomart-next/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	exitNow  bool
	stopped  atomic.Int32
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	if f.exitNow {
		return nil
	}
	<-ctx.Done()
	return nil
}

func (f *fakeService) Stop(context.Context) error {
	f.stopped.Add(1)
	return nil
}

func TestRunnerStopsAllOnCancel(t *testing.T) {
	api := &fakeService{name: "http"}
	sweep := &fakeService{name: "sweep"}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	if err := NewRunner(nil, api, sweep).Run(ctx, time.Second); err != nil {
		t.Fatalf("cancel should be a clean shutdown, got %v", err)
	}
	if api.stopped.Load() != 1 || sweep.stopped.Load() != 1 {
		t.Fatalf("every service should be stopped once, api=%d sweep=%d", api.stopped.Load(), sweep.stopped.Load())
	}
}

func TestRunnerPropagatesServiceError(t *testing.T) {
	boom := errors.New("listen failed")
	api := &fakeService{name: "http", startErr: boom}
	worker := &fakeService{name: "worker"}

	err := NewRunner(nil, api, worker).Run(context.Background(), time.Second)
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped start error, got %v", err)
	}
	if worker.stopped.Load() != 1 {
		t.Fatalf("healthy services should be stopped after a failure")
	}
}

func TestRunnerTreatsEarlyExitAsFailure(t *testing.T) {
	sweep := &fakeService{name: "sweep", exitNow: true}
	err := NewRunner(nil, sweep, &fakeService{name: "http"}).Run(context.Background(), time.Second)
	if err == nil || !strings.Contains(err.Error(), "sweep") {
		t.Fatalf("want unexpected exit error naming sweep, got %v", err)
	}
}

func TestRunnerRejectsEmpty(t *testing.T) {
	if err := NewRunner(nil).Run(context.Background(), time.Second); err == nil {
		t.Fatalf("empty runner should fail")
	}
	if err := NewRunner(nil, nil).Run(context.Background(), time.Second); err == nil {
		t.Fatalf("nil service should fail")
	}
}

func TestBuildRunnerValidatesMode(t *testing.T) {
	cfg := &config.Config{}
	if _, err := BuildRunner(cfg, "batch", nil); err == nil {
		t.Fatalf("unknown mode should fail")
	}
	if _, err := BuildRunner(cfg, ModeWorker, nil); err == nil || !strings.Contains(err.Error(), "queue.enabled") {
		t.Fatalf("worker mode without queue should fail, got %v", err)
	}
	if _, err := BuildRunner(nil, ModeAPI, nil); err == nil {
		t.Fatalf("nil config should fail")
	}
}

func TestNormalizeOptionsUsesServerShutdownTimeout(t *testing.T) {
	opts := normalizeOptions(Options{Config: &config.Config{Server: config.ServerConfig{ShutdownTimeoutSeconds: 3}}})
	if opts.ShutdownTimeout != 3*time.Second {
		t.Fatalf("shutdown timeout want 3s got %s", opts.ShutdownTimeout)
	}
	if opts.Mode != ModeAll || opts.Logger == nil {
		t.Fatalf("defaults not applied: %+v", opts)
	}
}

func TestServerConfigAddr(t *testing.T) {
	svc := NewHTTPService(config.ServerConfig{Host: "127.0.0.1", Port: "9090", ReadTimeoutSeconds: 2}, nil)
	if svc.server.Addr != "127.0.0.1:9090" || svc.server.ReadTimeout != 2*time.Second || svc.server.WriteTimeout != 0 {
		t.Fatalf("unexpected server settings: addr=%s read=%s write=%s", svc.server.Addr, svc.server.ReadTimeout, svc.server.WriteTimeout)
	}
}

func TestRunnerClosesResourcesInReverseOrder(t *testing.T) {
	var order []string
	runner := NewRunner(nil, &fakeService{name: "sweep", exitNow: true})
	runner.OnClose(func() error { order = append(order, "cache"); return nil })
	runner.OnClose(func() error { order = append(order, "queue"); return errors.New("already closed") })

	_ = runner.Run(context.Background(), time.Second)
	if strings.Join(order, ",") != "queue,cache" {
		t.Fatalf("closers should run in reverse order, got %v", order)
	}
}
