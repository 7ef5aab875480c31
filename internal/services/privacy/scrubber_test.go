package privacy

import (
	"strings"
	"testing"
)

func TestScrubReplacesEachKind(t *testing.T) {
	s := NewScrubber("")
	cases := []struct {
		name  string
		in    string
		want  string
		kinds []string
	}{
		{
			"email and phone",
			"Contact me at john.doe@email.com or call 555-123-4567",
			"Contact me at [EMAIL_REDACTED] or call [PHONE_REDACTED]",
			[]string{KindEmail, KindPhone},
		},
		{
			"ssn",
			"ssn 078-05-1120 on file",
			"ssn [SSN_REDACTED] on file",
			[]string{KindSSN},
		},
		{
			"card with spaces",
			"card 4111 1111 1111 1111 declined",
			"card [CARD_REDACTED] declined",
			[]string{KindCreditCard},
		},
		{
			"card contiguous",
			"card 4111111111111111 declined",
			"card [CARD_REDACTED] declined",
			[]string{KindCreditCard},
		},
		{
			"ip address",
			"login from 192.168.1.100 failed",
			"login from [IP_REDACTED] failed",
			[]string{KindIPAddress},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, kinds := s.Scrub(tc.in)
			if got != tc.want {
				t.Errorf("Scrub(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if len(kinds) != len(tc.kinds) {
				t.Fatalf("kinds = %v, want %v", kinds, tc.kinds)
			}
			for i, k := range tc.kinds {
				if kinds[i] != k {
					t.Errorf("kinds[%d] = %q, want %q", i, kinds[i], k)
				}
			}
		})
	}
}

func TestScrubPhoneFormats(t *testing.T) {
	s := NewScrubber("")
	for _, in := range []string{"5551234567", "555.123.4567", "555-123-4567"} {
		got, kinds := s.Scrub("call " + in)
		if got != "call [PHONE_REDACTED]" {
			t.Errorf("Scrub(call %s) = %q, want phone redacted", in, got)
		}
		if len(kinds) != 1 || kinds[0] != KindPhone {
			t.Errorf("kinds for %q = %v, want [phone]", in, kinds)
		}
	}
}

func TestScrubCleanTextUntouched(t *testing.T) {
	s := NewScrubber("")
	in := "the rollout went fine, 42 replies in an hour"
	got, kinds := s.Scrub(in)
	if got != in {
		t.Errorf("clean text changed: %q", got)
	}
	if len(kinds) != 0 {
		t.Errorf("kinds = %v, want none", kinds)
	}
}

func TestScrubRepeatedKindReportedOnce(t *testing.T) {
	s := NewScrubber("")
	got, kinds := s.Scrub("a@x.com wrote to b@y.org")
	if strings.Contains(got, "@") {
		t.Errorf("emails left in output: %q", got)
	}
	if len(kinds) != 1 || kinds[0] != KindEmail {
		t.Errorf("kinds = %v, want [email]", kinds)
	}
}

func TestDetectGroupsByKind(t *testing.T) {
	s := NewScrubber("")
	found := s.Detect("a@x.com and b@y.org from 10.0.0.1")
	if len(found[KindEmail]) != 2 {
		t.Errorf("emails = %v, want 2 matches", found[KindEmail])
	}
	if len(found[KindIPAddress]) != 1 {
		t.Errorf("ips = %v, want 1 match", found[KindIPAddress])
	}
	if _, ok := found[KindSSN]; ok {
		t.Errorf("unexpected ssn matches: %v", found[KindSSN])
	}
}

func TestHashAuthor(t *testing.T) {
	s := NewScrubber("pepper")

	h1 := s.HashAuthor("alice")
	h2 := s.HashAuthor("alice")
	if h1 != h2 {
		t.Errorf("hash not deterministic: %q vs %q", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
	if h1 == s.HashAuthor("bob") {
		t.Error("different authors share a hash")
	}
	if h1 == NewScrubber("other").HashAuthor("alice") {
		t.Error("salt has no effect on hash")
	}
	if s.HashAuthor("") != "" {
		t.Error("empty author should stay empty")
	}
}
