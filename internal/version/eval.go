package version

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// operand is either a version-string value awaiting a comparison, or an
// already-evaluated boolean.
type operand struct {
	isBool  bool
	boolean bool
	version string
}

// Eval runs a parsed postfix expression against versionUnderTest, resolving
// any sha256sum(hex) predicate against contentDigest (the SHA-256 of
// whatever content the caller considers "the package contents" — nil if the
// caller has no digest to offer, in which case a hash predicate evaluates
// to false rather than erroring, matching "absent content fails the check").
func Eval(postfix []Token, versionUnderTest string, contentDigest []byte) (bool, error) {
	var stack []operand

	push := func(o operand) { stack = append(stack, o) }
	pop := func() (operand, error) {
		if len(stack) == 0 {
			return operand{}, fmt.Errorf("malformed version expression: operand stack underflow")
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}

	for _, tok := range postfix {
		switch {
		case IsPlaceholder(tok):
			push(operand{version: versionUnderTest})

		case tok.Kind == TokVersionNumber:
			push(operand{version: tok.Value})

		case tok.Kind == TokSha256Sum:
			push(operand{isBool: true, boolean: matchesDigest(tok.Value, contentDigest)})

		case tok.IsComparison():
			rhs, err := pop()
			if err != nil {
				return false, err
			}
			lhs, err := pop()
			if err != nil {
				return false, err
			}
			result, err := evalComparison(tok.Kind, lhs.version, rhs.version)
			if err != nil {
				return false, err
			}
			push(operand{isBool: true, boolean: result})

		case tok.Kind == TokOr || tok.Kind == TokAnd:
			rhs, err := pop()
			if err != nil {
				return false, err
			}
			lhs, err := pop()
			if err != nil {
				return false, err
			}
			if !lhs.isBool || !rhs.isBool {
				return false, fmt.Errorf("malformed version expression: boolean combinator applied to a non-boolean operand")
			}
			var result bool
			if tok.Kind == TokAnd {
				result = lhs.boolean && rhs.boolean
			} else {
				result = lhs.boolean || rhs.boolean
			}
			push(operand{isBool: true, boolean: result})

		default:
			return false, fmt.Errorf("malformed version expression: unexpected token in postfix stream")
		}
	}

	if len(stack) != 1 || !stack[0].isBool {
		return false, fmt.Errorf("malformed version expression: did not reduce to a single boolean")
	}
	return stack[0].boolean, nil
}

func evalComparison(kind TokenKind, lhs, rhs string) (bool, error) {
	c, err := Compare(lhs, rhs)
	if err != nil {
		return false, err
	}
	switch kind {
	case TokEq, TokEqEq:
		return c == 0, nil
	case TokNotEq:
		return c != 0, nil
	case TokGt:
		return c > 0, nil
	case TokGtEq:
		return c >= 0, nil
	case TokLt:
		return c < 0, nil
	case TokLtEq:
		return c <= 0, nil
	default:
		return false, fmt.Errorf("not a comparison token")
	}
}

func matchesDigest(wantHex string, have []byte) bool {
	if have == nil {
		return false
	}
	want, err := hex.DecodeString(wantHex)
	if err != nil || len(want) != sha256.Size {
		return false
	}
	return subtle.ConstantTimeCompare(want, have) == 1
}
