package lsp

import (
	"strings"
	"testing"
)

func TestSignatureHelpActiveParam(t *testing.T) {
	src := strings.Join([]string{
		"<LAND_GENERATION>",
		"resource_delta wood 100",
	}, "\n") + "\n"
	snapshot, uri := analyzeSnapshot(t, src)
	server := &Server{lastGoodSnapshot: snapshot}

	callIdx := strings.Index(src, "resource_delta ")
	if callIdx < 0 {
		t.Fatal("missing command")
	}
	firstArgOffset := callIdx + len("resource_delta ")
	help := server.buildSignatureHelp(uri, positionForOffsetUTF16(src, firstArgOffset))
	if help == nil || len(help.Signatures) == 0 {
		t.Fatal("expected signature help")
	}
	if help.ActiveParameter != 0 {
		t.Fatalf("expected active parameter 0, got %d", help.ActiveParameter)
	}

	secondArgOffset := callIdx + len("resource_delta wood ")
	help = server.buildSignatureHelp(uri, positionForOffsetUTF16(src, secondArgOffset))
	if help == nil || len(help.Signatures) == 0 {
		t.Fatal("expected signature help for second arg")
	}
	if help.ActiveParameter != 1 {
		t.Fatalf("expected active parameter 1, got %d", help.ActiveParameter)
	}
}

func TestSignatureHelpLabelsArgKinds(t *testing.T) {
	src := strings.Join([]string{
		"<LAND_GENERATION>",
		"resource_delta wood 100",
	}, "\n") + "\n"
	snapshot, uri := analyzeSnapshot(t, src)
	server := &Server{lastGoodSnapshot: snapshot}

	callIdx := strings.Index(src, "resource_delta ")
	help := server.buildSignatureHelp(uri, positionForOffsetUTF16(src, callIdx+len("resource_delta ")))
	if help == nil {
		t.Fatal("expected signature help")
	}
	if len(help.Signatures) != 1 {
		t.Fatalf("expected 1 signature, got %d", len(help.Signatures))
	}
	label := help.Signatures[help.ActiveSignature].Label
	if !strings.Contains(label, "word") || !strings.Contains(label, "number") {
		t.Fatalf("expected label to mention arg kinds, got %q", label)
	}
	if len(help.Signatures[0].Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(help.Signatures[0].Parameters))
	}
}

func TestSignatureHelpOutsideCommand(t *testing.T) {
	src := "<LAND_GENERATION>\nresource_delta wood 100\n"
	snapshot, uri := analyzeSnapshot(t, src)
	server := &Server{lastGoodSnapshot: snapshot}

	help := server.buildSignatureHelp(uri, positionForOffsetUTF16(src, 0))
	if help != nil {
		t.Fatalf("expected no signature help at section header, got %+v", help)
	}
}
