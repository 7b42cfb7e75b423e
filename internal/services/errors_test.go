package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"clipscribe/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "extract", "ffmpeg", "no audio stream", cause)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive")
	}
	for _, fragment := range []string{"extract", "ffmpeg", "no audio stream", "exit status 1"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, err.Error())
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := services.AssetIDFromContext(ctx); ok {
		t.Fatal("expected no asset id on empty context")
	}

	ctx = services.WithAssetID(ctx, "demo")
	ctx = services.WithStage(ctx, "process")
	ctx = services.WithRequestID(ctx, "req-1")

	if id, ok := services.AssetIDFromContext(ctx); !ok || id != "demo" {
		t.Fatalf("asset id round trip failed: %q %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "process" {
		t.Fatalf("stage round trip failed: %q %v", stage, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-1" {
		t.Fatalf("request id round trip failed: %q %v", rid, ok)
	}
}

func TestWithEmptyValuesLeaveContextUntouched(t *testing.T) {
	ctx := context.Background()
	if services.WithStage(ctx, "") != ctx {
		t.Fatal("empty stage should not allocate a new context")
	}
	if services.WithAssetID(ctx, "") != ctx {
		t.Fatal("empty asset id should not allocate a new context")
	}
}
