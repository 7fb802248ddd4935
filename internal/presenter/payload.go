package presenter

import (
	"errors"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("error payload is not valid JSON")
	ErrNotObject   = errors.New("error payload is not a JSON object")
)

// key under which form-wide errors are aggregated
const aggregateKey = "__all__"

// an error payload is an ordered mapping from field name to value.
// document order is preserved because messages are derived in encounter order.
type ErrorPayload []Field

type Field struct {
	Key   string
	Value Value
}

type ValueKind int

const (
	ValueScalar ValueKind = iota
	ValueList
	ValueObject
)

type Value struct {
	Kind   ValueKind
	Items  []Item       // ValueList
	Object ErrorPayload // ValueObject
	Scalar string       // ValueScalar
}

type ItemKind int

const (
	ItemOther ItemKind = iota
	ItemSubError
	ItemAggregate
	ItemNested
	ItemText
)

type SubError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// one element of a field's error list
type Item struct {
	Kind     ItemKind
	SubError SubError     // ItemSubError
	All      []SubError   // ItemAggregate
	Nested   ErrorPayload // ItemNested
	Text     string       // ItemText
}

// nesting below this depth is not walked. deeper values are kept as empty
// scalars, which derive nothing.
const maxDepth = 32

// parses a response body into an ordered error payload
func ParsePayload(body []byte) (ErrorPayload, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, ErrNotObject
	}

	return parseObject(root, 0), nil
}

func parseObject(obj gjson.Result, depth int) ErrorPayload {
	payload := ErrorPayload{}

	obj.ForEach(func(key, value gjson.Result) bool {
		payload = append(payload, Field{
			Key:   key.String(),
			Value: parseValue(value, depth+1),
		})
		return true
	})

	return payload
}

func parseValue(v gjson.Result, depth int) Value {
	if depth > maxDepth {
		return Value{Kind: ValueScalar}
	}

	switch {
	case v.IsArray():
		items := []Item{}
		v.ForEach(func(_, el gjson.Result) bool {
			items = append(items, parseItem(el, depth+1))
			return true
		})
		return Value{Kind: ValueList, Items: items}

	case v.IsObject():
		return Value{Kind: ValueObject, Object: parseObject(v, depth)}

	default:
		return Value{Kind: ValueScalar, Scalar: v.String()}
	}
}

// the members of a list element that decide its kind
type itemFields struct {
	message gjson.Result
	code    gjson.Result
	all     gjson.Result
}

// collects message, code and __all__ in one pass. keys are compared
// exactly, bypassing gjson path syntax.
func scanItem(obj gjson.Result) itemFields {
	var f itemFields

	obj.ForEach(func(k, v gjson.Result) bool {
		switch k.String() {
		case "message":
			f.message = v
		case "code":
			f.code = v
		case aggregateKey:
			f.all = v
		}
		return true
	})

	return f
}

// a null message counts as absent
func (f itemFields) hasMessage() bool {
	return f.message.Exists() && f.message.Type != gjson.Null
}

func (f itemFields) subError() SubError {
	return SubError{
		Message: f.message.String(),
		Code:    f.code.String(),
	}
}

func parseItem(el gjson.Result, depth int) Item {
	if depth > maxDepth {
		return Item{Kind: ItemOther}
	}

	switch {
	case el.IsObject():
		fields := scanItem(el)

		if fields.hasMessage() {
			return Item{Kind: ItemSubError, SubError: fields.subError()}
		}

		if fields.all.IsArray() {
			subs := []SubError{}
			fields.all.ForEach(func(_, sub gjson.Result) bool {
				if !sub.IsObject() {
					return true
				}
				// aggregate entries without a message are skipped
				if subFields := scanItem(sub); subFields.hasMessage() {
					subs = append(subs, subFields.subError())
				}
				return true
			})
			return Item{Kind: ItemAggregate, All: subs}
		}

		return Item{Kind: ItemNested, Nested: parseObject(el, depth)}

	case el.Type == gjson.String:
		return Item{Kind: ItemText, Text: el.String()}

	default:
		return Item{Kind: ItemOther}
	}
}
