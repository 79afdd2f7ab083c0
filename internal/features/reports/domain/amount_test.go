package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type earningDoc struct {
	Earning Amount `bson:"earning"`
}

func decodeEarning(t *testing.T, value interface{}) Amount {
	t.Helper()
	raw, err := bson.Marshal(bson.D{{Key: "earning", Value: value}})
	require.NoError(t, err)

	var doc earningDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc.Earning
}

func TestAmount_UnmarshalBSONValue(t *testing.T) {
	dec, err := primitive.ParseDecimal128("199.99")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value interface{}
		kind  AmountKind
		key   string
		want  float64
	}{
		{name: "Null", value: nil, kind: AmountAbsent, key: TotalFare, want: 0},
		{name: "Double", value: 180.5, kind: AmountNumeric, key: TotalFare, want: 180.5},
		{name: "Int32", value: int32(250), kind: AmountNumeric, key: SenderTotalPay, want: 250},
		{name: "Int64", value: int64(1200), kind: AmountNumeric, key: "", want: 1200},
		{name: "Decimal128", value: dec, kind: AmountNumeric, key: TotalFare, want: 199.99},
		{name: "NumericString", value: "250", kind: AmountNumeric, key: TotalFare, want: 250},
		{name: "FormattedString", value: " ₹1,250.50 ", kind: AmountNumeric, key: TotalFare, want: 1250.5},
		{name: "EmptyString", value: "  ", kind: AmountAbsent, key: TotalFare, want: 0},
		{
			name:  "Structured",
			value: bson.D{{Key: "senderTotalPay", Value: 300}, {Key: "totalFare", Value: 180.0}},
			kind:  AmountStructured, key: TotalFare, want: 180,
		},
		{
			name:  "StructuredStringParts",
			value: bson.D{{Key: "senderTotalPay", Value: "300"}, {Key: "note", Value: true}},
			kind:  AmountStructured, key: SenderTotalPay, want: 300,
		},
		{name: "EmbeddedText", value: "senderTotalPay: 300, totalFare: 180", kind: AmountText, key: TotalFare, want: 180},
		{name: "Array", value: bson.A{1, 2}, kind: AmountText, key: TotalFare, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := decodeEarning(t, tt.value)
			assert.Equal(t, tt.kind, a.Kind())
			assert.InDelta(t, tt.want, Normalize(a, tt.key), 1e-9)
		})
	}
}

func TestAmount_DecodeMissingField(t *testing.T) {
	raw, err := bson.Marshal(bson.D{{Key: "other", Value: 1}})
	require.NoError(t, err)

	var doc earningDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.True(t, doc.Earning.IsAbsent())
	assert.Zero(t, Normalize(doc.Earning, TotalFare))
}

func TestNormalize_NumericIgnoresSubKey(t *testing.T) {
	a := NumericAmount(420)
	assert.Equal(t, 420.0, Normalize(a, SenderTotalPay))
	assert.Equal(t, 420.0, Normalize(a, TotalFare))
	assert.Equal(t, 420.0, Normalize(a, ""))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []Amount{
		NumericAmount(0),
		NumericAmount(12.75),
		TextAmount("1,999"),
		StructuredAmount(map[string]float64{TotalFare: 88.8}),
		TextAmount("totalFare=45"),
	}

	for _, in := range inputs {
		once := Normalize(in, TotalFare)
		twice := Normalize(NumericAmount(once), TotalFare)
		assert.Equal(t, once, twice, in.Raw())
	}
}

func TestNormalize_EmbeddedText(t *testing.T) {
	tests := []struct {
		text string
		key  string
		want float64
	}{
		{"senderTotalPay: 300, totalFare: 180", SenderTotalPay, 300},
		{"SENDERTOTALPAY : 300 | TOTALFARE : 180", TotalFare, 180},
		{`{"senderTotalPay":"₹1,200","totalFare":"900.25"}`, SenderTotalPay, 1200},
		{`{"senderTotalPay":"₹1,200","totalFare":"900.25"}`, TotalFare, 900.25},
		{"totalFare = Rs. 75", TotalFare, 75},
		{"baseTotalFare: 10", TotalFare, 0},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(TextAmount(tt.text), tt.key))
		})
	}
}

func TestNormalizeField_Issues(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		key    string
		reason string
	}{
		{"Negative", NumericAmount(-5), TotalFare, "negative amount"},
		{"NegativeString", TextAmount("-12"), TotalFare, "negative amount"},
		{"NaN", NumericAmount(math.NaN()), TotalFare, "non-finite amount"},
		{"Inf", NumericAmount(math.Inf(1)), TotalFare, "non-finite amount"},
		{"MissingPart", StructuredAmount(map[string]float64{SenderTotalPay: 300}), TotalFare, `missing sub-amount "totalFare"`},
		{"NoMatch", TextAmount("to be decided"), TotalFare, `no "totalFare" amount in text`},
		{"NegativeEmbedded", TextAmount("totalFare: -40"), TotalFare, "negative amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, issue := NormalizeField("consignments.earning", tt.amount, tt.key)
			assert.Zero(t, v)
			require.NotNil(t, issue)
			assert.Equal(t, "consignments.earning", issue.Field)
			assert.Equal(t, tt.reason, issue.Reason)
		})
	}

	v, issue := NormalizeField("consignments.earning", Amount{}, TotalFare)
	assert.Zero(t, v)
	assert.Nil(t, issue, "absence is not malformed")
}

func TestNormalize_NeverNegative(t *testing.T) {
	shapes := []Amount{
		{},
		NumericAmount(-1),
		NumericAmount(math.Inf(-1)),
		TextAmount("garbage"),
		TextAmount("totalFare: -1"),
		StructuredAmount(map[string]float64{TotalFare: -10}),
		StructuredAmount(nil),
	}
	for _, a := range shapes {
		assert.NotPanics(t, func() {
			v := Normalize(a, TotalFare)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.False(t, math.IsNaN(v))
		})
	}
}

func TestAmount_Has(t *testing.T) {
	assert.False(t, Amount{}.Has(SenderTotalPay))
	assert.True(t, NumericAmount(1).Has(SenderTotalPay))
	assert.True(t, StructuredAmount(map[string]float64{"SenderTotalPay": 1}).Has(SenderTotalPay))
	assert.False(t, StructuredAmount(map[string]float64{TotalFare: 1}).Has(SenderTotalPay))
	assert.True(t, TextAmount("senderTotalPay: 5").Has(SenderTotalPay))
	assert.False(t, TextAmount("pending").Has(SenderTotalPay))
}

func TestAmount_JSON(t *testing.T) {
	var doc struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
		D Amount `json:"d"`
		E Amount `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a":null,"b":12.5,"c":"1,000","d":{"senderTotalPay":300,"totalFare":"180"},"e":"fare tbd"}`), &doc)
	require.NoError(t, err)

	assert.True(t, doc.A.IsAbsent())
	assert.Equal(t, 12.5, Normalize(doc.B, ""))
	assert.Equal(t, 1000.0, Normalize(doc.C, ""))
	assert.Equal(t, 180.0, Normalize(doc.D, TotalFare))
	assert.Equal(t, AmountText, doc.E.Kind())

	out, err := json.Marshal(doc.D)
	require.NoError(t, err)
	assert.JSONEq(t, `{"senderTotalPay":300,"totalFare":180}`, string(out))

	out, err = json.Marshal(doc.A)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
