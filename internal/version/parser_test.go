package version

import "testing"

func TestParseWorkedExample(t *testing.T) {
	postfix, err := ParseExpr(`(=1.2.3 || =4.5.6) && <7.8.9 && sha256sum(012345abc)`)
	if err != nil {
		t.Fatal(err)
	}

	want := []Token{
		PlaceholderToken,
		{Kind: TokVersionNumber, Value: "1.2.3"},
		{Kind: TokEq},
		PlaceholderToken,
		{Kind: TokVersionNumber, Value: "4.5.6"},
		{Kind: TokEq},
		{Kind: TokOr},
		PlaceholderToken,
		{Kind: TokVersionNumber, Value: "7.8.9"},
		{Kind: TokLt},
		{Kind: TokSha256Sum, Value: "012345abc"},
		{Kind: TokAnd},
		{Kind: TokAnd},
	}

	if len(postfix) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(postfix), len(want), postfix)
	}
	for i := range want {
		if postfix[i] != want[i] {
			t.Errorf("token %d: got %+v, want %+v", i, postfix[i], want[i])
		}
	}
}

func TestParseUnmatchedParen(t *testing.T) {
	if _, err := ParseExpr(`(=1.2.3`); err == nil {
		t.Error("expected a parse error for an unmatched '('")
	}
	if _, err := ParseExpr(`=1.2.3)`); err == nil {
		t.Error("expected a parse error for an unmatched ')'")
	}
}

func TestParseRawHexOutsideCall(t *testing.T) {
	if _, err := ParseExpr(`abc123`); err == nil {
		t.Error("expected a parse error for a raw hexadecimal literal outside sha256sum(...)")
	}
}

func TestEvalSimple(t *testing.T) {
	ok, err := Check(`>=1.0 && <2.0`, "1.5", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected 1.5 to satisfy >=1.0 && <2.0")
	}

	ok, err = Check(`>=1.0 && <2.0`, "2.5", nil)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected 2.5 to fail >=1.0 && <2.0")
	}
}
