package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	if got := KindDecode.String(); got != "malformed reply" {
		t.Errorf("KindDecode.String() = %q", got)
	}
	if got := Kind(200).String(); got != "unknown" {
		t.Errorf("out of range kind = %q, want unknown", got)
	}
}

func TestError_Error(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport", GatewayTransport("chat", cause), "gateway.Post chat: connection refused"},
		{"status", GatewayStatus("predict", 500, " boom \n"), "gateway.Post predict (500): boom"},
		{"decode", GatewayDecode("chat", cause), "gateway.Post chat: decode reply: connection refused"},
		{"config", ConfigSaveFailed("/x/config.json", cause), "config.Save: /x/config.json: connection refused"},
		{"detail only", ConfigInvalid("base url is empty"), "config.Validate: base url is empty"},
		{"bare", E(cause), "connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestE_PanicsOnUnknownArgument(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("E(42) should panic")
		}
	}()
	_ = E(Op("x"), 42)
}

func TestKinds(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"encode", GatewayEncode("predict", cause), KindInvalid},
		{"transport", GatewayTransport("chat", cause), KindNetwork},
		{"status", GatewayStatus("predict", 422, ""), KindStatus},
		{"decode", GatewayDecode("chat", cause), KindDecode},
		{"load", ConfigLoadFailed("/x", cause), KindConfig},
		{"save", ConfigSaveFailed("/x", cause), KindConfig},
		{"invalid", ConfigInvalid("no host"), KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !Is(wrapped, tt.kind) {
				t.Errorf("kind = %v, want %v", GetKind(wrapped), tt.kind)
			}
		})
	}
}

func TestIs_Nil(t *testing.T) {
	if Is(nil, KindUnknown) {
		t.Error("Is(nil, KindUnknown) should be false")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Error("plain errors have no kind")
	}
}

func TestStatusOf(t *testing.T) {
	err := fmt.Errorf("chat: %w", GatewayStatus("chat", 503, "busy"))
	if got := StatusOf(err); got != 503 {
		t.Errorf("StatusOf = %d, want 503", got)
	}
	if got := StatusOf(GatewayTransport("chat", errors.New("x"))); got != 0 {
		t.Errorf("StatusOf(transport) = %d, want 0", got)
	}
}

func TestUnwrapChain(t *testing.T) {
	inner := errors.New("disk full")
	outer := E(Op("config.Set"), KindConfig, ConfigSaveFailed("/x", inner))

	if !errors.Is(outer, inner) {
		t.Error("errors.Is should reach the root cause")
	}
	if GetKind(outer) != KindConfig {
		t.Error("GetKind should report the outermost kind")
	}
}
