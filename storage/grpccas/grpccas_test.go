package grpccas

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"xdao.co/zerowallet/storage"
	"xdao.co/zerowallet/storage/localfs"
	"xdao.co/zerowallet/storage/memcas"
	"xdao.co/zerowallet/storage/testkit"
)

// serve starts a ContentStore server for backend on an in-process listener and
// returns a connected client.
func serve(t *testing.T, srv *Server, opts ...grpc.ServerOption) *Client {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	gs := grpc.NewServer(opts...)
	RegisterContentStoreServer(gs, srv)
	go func() {
		_ = gs.Serve(lis)
	}()
	t.Cleanup(gs.Stop)

	client, err := Dial("bufnet", DialOptions{
		CallTimeout:   2 * time.Second,
		ContextDialer: func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) },
	})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestGRPCCAS_Conformance_MemCAS(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return serve(t, &Server{CAS: memcas.New()})
	})
}

func TestGRPCCAS_Conformance_LocalFS(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		cas, err := localfs.New(t.TempDir())
		if err != nil {
			t.Fatalf("localfs.New: %v", err)
		}
		return serve(t, &Server{CAS: cas})
	})
}

func TestGRPCCAS_ErrorMapping(t *testing.T) {
	backend := memcas.New()
	client := serve(t, &Server{CAS: backend, MaxObjectBytes: 8})

	if _, err := client.Put([]byte("more than eight bytes")); !errors.Is(err, storage.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	id, err := client.Put([]byte("small"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !backend.Has(id) {
		t.Fatalf("expected backend to hold %s", id)
	}
}

func TestGRPCCAS_MissingBackend(t *testing.T) {
	client := serve(t, &Server{})
	if _, err := client.Put([]byte("x")); err == nil {
		t.Fatalf("expected error from server without backend")
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := serve(t, &Server{CAS: memcas.New()}, grpc.UnaryInterceptor(LoggingInterceptor(log)))

	if _, err := client.Put([]byte("logged")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	other := memcas.New()
	missing, err := other.Put([]byte("never uploaded"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := client.Get(missing); !storage.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`msg="content call"`,
		"method=" + methodPut,
		`msg="content call failed"`,
		"code=NotFound",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDial_RequiresTarget(t *testing.T) {
	if _, err := Dial("", DialOptions{}); err == nil {
		t.Fatalf("expected error for empty target")
	}
}
