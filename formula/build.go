package formula

import (
	"fmt"

	"github.com/iwahq/numbers/internal/errs"
)

// FunctionIndex resolves a function name to its registry index, supplied
// by the caller (grounded on formula.py's FUNCTION_NAME_TO_ID, backed by
// the same bootstrap-table idea as the message registry per spec.md §9).
type FunctionIndex func(name string) (int, bool)

// Build tokenizes formula and runs the shunting-yard algorithm to produce
// its flat, postfix-ordered AST node array (spec.md §4.10). row/col is the
// formula's own cell, used to make relative references relative to it.
func Build(formulaStr string, row, col int, fnIndex FunctionIndex) ([]Node, error) {
	tokens := Tokenize(formulaStr)

	var output []Node
	var opStack []stackItem

	popOperator := func() error {
		top := opStack[len(opStack)-1]
		opStack = opStack[:len(opStack)-1]

		if top.isFunc {
			output = append(output, Node{Kind: KindFunction, FunctionIndex: top.funcIndex, NumArgs: top.argCount})
			return nil
		}

		kind, ok := infixKind(top.op)
		if !ok {
			return &errs.FormulaError{Formula: formulaStr, Reason: fmt.Sprintf("unsupported operator %q", top.op)}
		}
		output = append(output, Node{Kind: kind})
		return nil
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokOperand:
			n, err := operandNode(formulaStr, tok, row, col)
			if err != nil {
				return nil, err
			}
			output = append(output, n)

		case TokFuncOpen:
			idx, ok := fnIndex(tok.Value)
			if !ok {
				return nil, &errs.FormulaError{Formula: formulaStr, Reason: fmt.Sprintf("function %q is not supported", tok.Value)}
			}
			opStack = append(opStack, stackItem{isFunc: true, funcIndex: idx, argCount: 1, isParen: true})

		case TokParenOpen:
			opStack = append(opStack, stackItem{isParen: true})

		case TokSeparator:
			for len(opStack) > 0 && !opStack[len(opStack)-1].isParen {
				if err := popOperator(); err != nil {
					return nil, err
				}
			}
			if len(opStack) > 0 && opStack[len(opStack)-1].isFunc {
				opStack[len(opStack)-1].argCount++
			}

		case TokParenClose, TokFuncClose:
			for len(opStack) > 0 && !opStack[len(opStack)-1].isParen {
				if err := popOperator(); err != nil {
					return nil, err
				}
			}
			if len(opStack) == 0 {
				return nil, &errs.FormulaError{Formula: formulaStr, Reason: "unbalanced parentheses"}
			}
			top := opStack[len(opStack)-1]
			opStack = opStack[:len(opStack)-1]
			if top.isFunc {
				output = append(output, Node{Kind: KindFunction, FunctionIndex: top.funcIndex, NumArgs: top.argCount})
			}

		case TokOpInfix, TokOpPrefix:
			prec := operatorPrecedence[tok.Value]
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.isParen || top.isFunc {
					break
				}
				if operatorPrecedence[top.op] < prec {
					break
				}
				if err := popOperator(); err != nil {
					return nil, err
				}
			}
			opStack = append(opStack, stackItem{op: tok.Value})

		case TokOpPostfix:
			kind, ok := infixKind(tok.Value)
			if ok {
				output = append(output, Node{Kind: kind})
			}
		}
	}

	for len(opStack) > 0 {
		if err := popOperator(); err != nil {
			return nil, err
		}
	}

	return output, nil
}

type stackItem struct {
	op       string
	isFunc   bool
	isParen  bool
	funcIndex int
	argCount int
}

func infixKind(op string) (NodeKind, bool) {
	switch op {
	case "+":
		return KindAddition, true
	case "-":
		return KindSubtraction, true
	case "*", "×":
		return KindMultiplication, true
	case "/", "÷":
		return KindDivision, true
	case "&":
		return KindConcatenation, true
	case "^":
		return KindPower, true
	case "=", "==":
		return KindEqualTo, true
	case "<>":
		return KindNotEqualTo, true
	case "<":
		return KindLessThan, true
	case ">":
		return KindGreaterThan, true
	case "<=":
		return KindLessThanOrEqual, true
	case ">=":
		return KindGreaterThanOrEqual, true
	case "%":
		return KindPercent, true
	default:
		return KindUnknown, false
	}
}

// refAxis resolves one axis of a parsed Reference relative to the
// formula's own cell, preserving unboundAxis (a row-only/column-only
// range's missing dimension) through the translation untouched.
func refAxis(value int, abs bool, own int) (resolved int, resolvedAbs bool) {
	if value == unboundAxis {
		return unboundAxis, true
	}
	if abs {
		return value, true
	}
	return value - own, false
}

func operandNode(formulaStr string, tok Token, row, col int) (Node, error) {
	switch tok.Operand {
	case OperandNumber:
		return Node{Kind: KindNumber, Number: parseNumber(tok.Value)}, nil
	case OperandText:
		return Node{Kind: KindString, Text: tok.Value}, nil
	case OperandLogical:
		return Node{Kind: KindBoolean, Boolean: tok.Value == "TRUE" || tok.Value == "True"}, nil
	case OperandError:
		return Node{Kind: KindReferenceError, Text: tok.Value}, nil
	case OperandRange:
		ref := ParseReference(tok.Value)
		if !ref.Valid {
			return Node{}, &errs.FormulaError{Formula: formulaStr, Reason: fmt.Sprintf("named range %q is not supported", tok.Value)}
		}

		n := Node{TableUID: ref.Scope2}
		n.Row, n.RowAbsolute = refAxis(ref.RowStart, ref.RowStartAbs, row)
		n.Col, n.ColAbsolute = refAxis(ref.ColStart, ref.ColStartAbs, col)

		if ref.IsRange {
			n.Kind = KindColonTract
			n.IsRange = true
			n.RowEnd, n.RowEndAbsolute = refAxis(ref.RowEnd, ref.RowEndAbs, row)
			n.ColEnd, n.ColEndAbsolute = refAxis(ref.ColEnd, ref.ColEndAbs, col)
		} else {
			n.Kind = KindCellReference
		}
		return n, nil
	default:
		return Node{Kind: KindUnknown, Text: tok.Value}, nil
	}
}
