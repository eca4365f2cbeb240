package logic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondition_FieldOperators(t *testing.T) {
	data := map[string]any{
		"amount":   float64(100),
		"limit":    float64(250),
		"currency": "EUR",
		"status":   "paid",
		"email":    "trader@exchange.example",
		"tags":     []any{"vip", "eu"},
		"order":    map[string]any{"id": "A1", "items": []any{map[string]any{"sku": "BTC"}}},
		"nothing":  nil,
		"created":  "2025-11-05T10:00:00Z",
	}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{name: "eq number across types", cond: Condition{Field: "amount", Op: OpEq, Value: 100}, want: true},
		{name: "eq string", cond: Condition{Field: "currency", Op: OpEq, Value: "EUR"}, want: true},
		{name: "eq missing field", cond: Condition{Field: "missing", Op: OpEq, Value: nil}, want: false},
		{name: "neq", cond: Condition{Field: "currency", Op: OpNeq, Value: "USD"}, want: true},
		{name: "neq missing field", cond: Condition{Field: "missing", Op: OpNeq, Value: "x"}, want: true},
		{name: "gt", cond: Condition{Field: "amount", Op: OpGt, Value: 50}, want: true},
		{name: "gt equal", cond: Condition{Field: "amount", Op: OpGt, Value: 100}, want: false},
		{name: "gte equal", cond: Condition{Field: "amount", Op: OpGte, Value: 100}, want: true},
		{name: "lt", cond: Condition{Field: "amount", Op: OpLt, Value: 1000}, want: true},
		{name: "lte", cond: Condition{Field: "amount", Op: OpLte, Value: 99.5}, want: false},
		{name: "gt string compares lexically", cond: Condition{Field: "created", Op: OpGt, Value: "2025-01-01T00:00:00Z"}, want: true},
		{name: "gt mixed types is false", cond: Condition{Field: "currency", Op: OpGt, Value: 1}, want: false},
		{name: "gt missing field is false", cond: Condition{Field: "missing", Op: OpGt, Value: 1}, want: false},
		{name: "value_field comparison", cond: Condition{Field: "amount", Op: OpLt, ValueField: "limit"}, want: true},
		{name: "in", cond: Condition{Field: "status", Op: OpIn, Value: []any{"paid", "settled"}}, want: true},
		{name: "not_in", cond: Condition{Field: "status", Op: OpNotIn, Value: []any{"cancelled"}}, want: true},
		{name: "in missing field", cond: Condition{Field: "missing", Op: OpIn, Value: []any{"x"}}, want: false},
		{name: "contains substring", cond: Condition{Field: "email", Op: OpContains, Value: "@exchange"}, want: true},
		{name: "contains element", cond: Condition{Field: "tags", Op: OpContains, Value: "vip"}, want: true},
		{name: "contains key", cond: Condition{Field: "order", Op: OpContains, Value: "id"}, want: true},
		{name: "starts_with", cond: Condition{Field: "email", Op: OpStartsWith, Value: "trader"}, want: true},
		{name: "ends_with", cond: Condition{Field: "email", Op: OpEndsWith, Value: ".example"}, want: true},
		{name: "exists", cond: Condition{Field: "order.items.0.sku", Op: OpExists}, want: true},
		{name: "exists nil value", cond: Condition{Field: "nothing", Op: OpExists}, want: false},
		{name: "not_exists", cond: Condition{Field: "order.refund", Op: OpNotExists}, want: true},
		{name: "nested path", cond: Condition{Field: "order.items.0.sku", Op: OpEq, Value: "BTC"}, want: true},
		{name: "all", cond: Condition{All: []Condition{
			{Field: "amount", Op: OpGt, Value: 50},
			{Field: "currency", Op: OpEq, Value: "USD"},
		}}, want: false},
		{name: "any", cond: Condition{Any: []Condition{
			{Field: "amount", Op: OpGt, Value: 5000},
			{Field: "currency", Op: OpEq, Value: "EUR"},
		}}, want: true},
		{name: "not", cond: Condition{Not: &Condition{Field: "currency", Op: OpEq, Value: "EUR"}}, want: false},
		{name: "expr", cond: Condition{Expr: `amount > 50 && currency == "EUR"`}, want: true},
		{name: "expr with builtin", cond: Condition{Expr: `"vip" in tags`}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cond.Evaluate(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCondition_Errors(t *testing.T) {
	data := map[string]any{"status": "paid"}

	tests := []struct {
		name string
		cond Condition
	}{
		{name: "unknown operator", cond: Condition{Field: "status", Op: "between"}},
		{name: "in with scalar", cond: Condition{Field: "status", Op: OpIn, Value: "paid"}},
		{name: "empty node", cond: Condition{}},
		{name: "expr not bool", cond: Condition{Expr: `status + "x"`}},
		{name: "error inside all", cond: Condition{All: []Condition{{Field: "status", Op: "nope"}}}},
		{name: "error inside not", cond: Condition{Not: &Condition{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cond.Evaluate(data)
			assert.Error(t, err)
		})
	}
}

func TestCondition_ExprOnMissingField_IsFalseNotError(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		expr string
	}{
		{name: "top-level field absent", data: map[string]any{}, expr: `amount > 50`},
		{name: "field is null", data: map[string]any{"amount": nil}, expr: `amount > 50`},
		{name: "nested field absent", data: map[string]any{"order": map[string]any{"id": "A1"}}, expr: `order.total >= 100`},
		{name: "one side of and absent", data: map[string]any{"currency": "EUR"}, expr: `currency == "EUR" && amount > 50`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := Condition{Expr: tt.expr}
			require.NoError(t, cond.compile())

			got, err := cond.Evaluate(tt.data)

			require.NoError(t, err)
			assert.False(t, got)

			field := Condition{Field: "amount", Op: OpGt, Value: 50}
			fieldGot, fieldErr := field.Evaluate(tt.data)
			assert.NoError(t, fieldErr)
			assert.False(t, fieldGot)
		})
	}
}

func TestCondition_ExprTypeErrorOnPresentField_IsError(t *testing.T) {
	cond := Condition{Expr: `amount > "fifty"`}

	_, err := cond.Evaluate(map[string]any{"amount": 100})

	assert.Error(t, err)
}

func TestCondition_AnyShortCircuits(t *testing.T) {
	cond := Condition{Any: []Condition{
		{Field: "status", Op: OpEq, Value: "paid"},
		{Field: "status", Op: "nope"},
	}}

	got, err := cond.Evaluate(map[string]any{"status": "paid"})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestCondition_JSONNumbers(t *testing.T) {
	cond := Condition{Field: "amount", Op: OpGte, Value: json.Number("10.5")}

	got, err := cond.Evaluate(map[string]any{"amount": json.Number("11")})
	require.NoError(t, err)
	assert.True(t, got)
}

func TestLookup(t *testing.T) {
	data := map[string]any{
		"user":   map[string]any{"id": "u1", "roles": []any{"admin", "ops"}},
		"labels": map[string]string{"region": "eu"},
		"ids":    []string{"a", "b"},
	}

	v, ok := Lookup(data, "user.roles.1")
	assert.True(t, ok)
	assert.Equal(t, "ops", v)

	v, ok = Lookup(data, "labels.region")
	assert.True(t, ok)
	assert.Equal(t, "eu", v)

	v, ok = Lookup(data, "ids.0")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = Lookup(data, "user.roles.7")
	assert.False(t, ok)

	_, ok = Lookup(data, "user.id.deeper")
	assert.False(t, ok)

	_, ok = Lookup(data, "")
	assert.False(t, ok)
}
