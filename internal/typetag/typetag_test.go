package typetag

import (
	"go/token"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-accessor/internal/schema"
)

func TestDerive(t *testing.T) {
	tests := map[string]string{
		"string":                         "TypeString",
		"uint32":                         "TypeUint32",
		"[]string":                       "TypeSliceOfString",
		"[]*string":                      "TypeSliceOfRefString",
		"[4]byte":                        "TypeArrayOfByteLen4",
		"[N]int":                         "TypeArrayOfIntLenN",
		"[2*N]int":                       "TypeArrayOfIntLen2TimesN",
		"*time.Time":                     "TypeRefTime_Time",
		"time.Duration":                  "TypeTime_Duration",
		"map[string]int":                 "TypeMapOfStringAndInt",
		"map[string][]time.Time":         "TypeMapOfStringAndSliceOfTime_Time",
		"Pair[int, string]":              "TypePairOfIntAndString",
		"List[int]":                      "TypeListOfInt",
		"func()":                         "TypeFunc",
		"func(int) error":                "TypeFuncOfIntReturnsError",
		"func(a, b int) (string, error)": "TypeFuncOfIntAndIntReturnsStringAndError",
		"func(...string)":                "TypeFuncOfVariadicOfString",
		"chan int":                       "TypeChanOfInt",
		"chan<- int":                     "TypeSendChanOfInt",
		"<-chan int":                     "TypeRecvChanOfInt",
		"interface{}":                    "TypeInterface",
		"any":                            "TypeAny",
		"interface{ String() string }":   "TypeInterfaceOfStringReturnsString",
		"struct{}":                       "TypeStruct",
		"struct{ X, Y int }":             "TypeStructOfXIntAndYInt",
		"struct{ X int `json:\"x\"` }":   "TypeStructOfXIntTaggedJsonx",
		"struct{ X, Y int `k:\"v\"` }":   "TypeStructOfXIntAndYIntTaggedKv",
	}

	for src, want := range tests {
		t.Run(src, func(t *testing.T) {
			tag := Derive(schema.MustParseTypeExpr(src))
			assert.Equal(t, want, tag)
			assert.True(t, token.IsIdentifier(tag), "tag %q must be an identifier", tag)
		})
	}
}

func TestDeriveAll(t *testing.T) {
	distinct := []schema.TypeExpr{
		schema.MustParseTypeExpr("string"),
		schema.MustParseTypeExpr("uint32"),
		schema.MustParseTypeExpr("[]string"),
	}

	tags, err := DeriveAll(distinct)
	require.NoError(t, err)
	require.Equal(t, 3, tags.Len())

	assert.Equal(t, "TypeString", tags.Of(distinct[0]))
	assert.Equal(t, "TypeUint32", tags.Of(distinct[1]))
	assert.Equal(t, "TypeSliceOfString", tags.Of(distinct[2]))
	assert.Equal(t, "", tags.Of(schema.MustParseTypeExpr("int")))

	list := tags.List()
	assert.Equal(t, "TypeString", list[0].Name)
	assert.Equal(t, "[]string", list[2].Type.Text)
}

func TestDeriveAll_IgnoresRepeatedTypes(t *testing.T) {
	tags, err := DeriveAll([]schema.TypeExpr{
		schema.MustParseTypeExpr("int"),
		schema.MustParseTypeExpr("int"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tags.Len())
}

func TestDeriveAll_Collision(t *testing.T) {
	collisions := [][2]string{
		{"[]int", "SliceOfInt"},
		{"time.Duration", "Time_Duration"},
		{"*T", "RefT"},
		{"map[K]V", "MapOfKAndV"},
		{"string", "String"},
	}

	for _, pair := range collisions {
		t.Run(pair[0], func(t *testing.T) {
			_, err := DeriveAll([]schema.TypeExpr{
				schema.MustParseTypeExpr(pair[0]),
				schema.MustParseTypeExpr(pair[1]),
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTagCollision))

			var collision *CollisionError
			require.True(t, errors.As(err, &collision))
			assert.Equal(t, pair[0], collision.First)
			assert.Equal(t, pair[1], collision.Second)
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}
