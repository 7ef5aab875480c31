package sentiment

import (
	"strings"
	"testing"

	"SentiCast/internal/domain/models"
)

func TestPreprocess(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"strips urls", "love it https://t.co/abc123", "love it"},
		{"strips www urls", "see www.example.com now", "see now"},
		{"strips mentions", "@support fix this", "fix this"},
		{"unwraps hashtags", "#launch day is here", "launch day is here"},
		{"removes markup", "50% off* (today)", "50 off today"},
		{"keeps basic punctuation", "wait, really?!", "wait, really?!"},
		{"collapses whitespace", "a\t\tb\n c", "a b c"},
		{"drops apostrophes", "Don't stop", "Dont stop"},
		{"empty after cleaning", "https://x.co @bob", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Preprocess(tc.in); got != tc.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPreprocessTruncates(t *testing.T) {
	long := strings.Repeat("a", 3*maxTextLen)
	got := Preprocess(long)
	if len(got) != maxTextLen {
		t.Fatalf("truncated length = %d, want %d", len(got), maxTextLen)
	}
}

func TestAnalyzeLabels(t *testing.T) {
	a := NewAnalyzer()
	cases := []struct {
		name string
		text string
		want string
	}{
		{"positive", "The new dashboard is great, I love it", models.ChannelPositive},
		{"negative", "terrible update, everything is broken", models.ChannelNegative},
		{"no lexicon hits", "the quarterly report ships on tuesday", models.ChannelNeutral},
		{"balanced mix", "good but slow", models.ChannelNeutral},
		{"case insensitive", "GREAT WORK", models.ChannelPositive},
		{"punctuation trimmed", "shipping was fast!", models.ChannelPositive},
		{"hashtag sentiment", "#awesome launch", models.ChannelPositive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := a.Analyze(tc.text)
			if got.Label != tc.want {
				t.Errorf("Analyze(%q).Label = %q, want %q (score %.2f)", tc.text, got.Label, tc.want, got.Score)
			}
		})
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := NewAnalyzer()
	for _, text := range []string{"", "   ", "https://t.co/abc @user"} {
		got := a.Analyze(text)
		if got.Label != models.ChannelNeutral || got.Score != 0 || got.Confidence != 0 {
			t.Errorf("Analyze(%q) = %+v, want neutral with zero score and confidence", text, got)
		}
	}
}

func TestAnalyzeNoHitsConfidence(t *testing.T) {
	a := NewAnalyzer()
	got := a.Analyze("the quarterly report ships on tuesday")
	if got.Confidence != neutralConfidence {
		t.Errorf("no-hit confidence = %v, want %v", got.Confidence, neutralConfidence)
	}
}

func TestAnalyzeNegationFlips(t *testing.T) {
	a := NewAnalyzer()

	got := a.Analyze("not good")
	if got.Label != models.ChannelNegative {
		t.Errorf("negated positive: label = %q, want %q", got.Label, models.ChannelNegative)
	}

	// Contraction negators survive apostrophe stripping.
	got = a.Analyze("Don't like the new layout")
	if got.Label != models.ChannelNegative {
		t.Errorf("contraction negator: label = %q, want %q", got.Label, models.ChannelNegative)
	}

	// "bad" flipped back to a positive signal.
	got = a.Analyze("not bad at all")
	if got.Label != models.ChannelPositive {
		t.Errorf("negated negative: label = %q, want %q", got.Label, models.ChannelPositive)
	}
}

func TestAnalyzeNegationWindowExpires(t *testing.T) {
	a := NewAnalyzer()

	// "good" is the third token after the negator: still inside the window.
	got := a.Analyze("not exactly sure good")
	if got.Label != models.ChannelNegative {
		t.Errorf("third token: label = %q, want %q", got.Label, models.ChannelNegative)
	}

	// Four tokens after the negator: the window has expired.
	got = a.Analyze("not sure what happened but good overall")
	if got.Label != models.ChannelPositive {
		t.Errorf("expired window: label = %q, want %q", got.Label, models.ChannelPositive)
	}
}

func TestAnalyzeIntensifierBoost(t *testing.T) {
	a := NewAnalyzer()

	// Without the boost the positive and negative hits cancel out.
	if got := a.Analyze("good but slow"); got.Label != models.ChannelNeutral {
		t.Errorf("unboosted: label = %q, want %q", got.Label, models.ChannelNeutral)
	}
	if got := a.Analyze("very good but slow"); got.Label != models.ChannelPositive {
		t.Errorf("boosted: label = %q, want %q", got.Label, models.ChannelPositive)
	}

	// Boost applies inside a negation window and the score stays bounded.
	got := a.Analyze("not very good")
	if got.Label != models.ChannelNegative {
		t.Errorf("negated boost: label = %q, want %q", got.Label, models.ChannelNegative)
	}
	if got.Score != -1 {
		t.Errorf("negated boost: score = %v, want -1", got.Score)
	}
}

func TestAnalyzeScoreAndConfidenceBounds(t *testing.T) {
	a := NewAnalyzer()

	got := a.Analyze("absolutely love it")
	if got.Score != 1 {
		t.Errorf("clamped score = %v, want 1", got.Score)
	}
	if got.Confidence != maxConfidence {
		t.Errorf("confidence = %v, want %v", got.Confidence, maxConfidence)
	}

	got = a.Analyze("good but slow")
	if got.Score != 0 || got.Confidence != 0.5 {
		t.Errorf("balanced text = %+v, want score 0 confidence 0.5", got)
	}
}

func TestAnalyzeBatchOrder(t *testing.T) {
	a := NewAnalyzer()
	texts := []string{"love it", "hate it", "it shipped"}
	got := a.AnalyzeBatch(texts)
	if len(got) != len(texts) {
		t.Fatalf("batch length = %d, want %d", len(got), len(texts))
	}
	want := []string{models.ChannelPositive, models.ChannelNegative, models.ChannelNeutral}
	for i, w := range want {
		if got[i].Label != w {
			t.Errorf("batch[%d].Label = %q, want %q", i, got[i].Label, w)
		}
	}
}
