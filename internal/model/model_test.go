package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
)

func TestFieldEqualIgnoresResource(t *testing.T) {
	a := &Field{Name: "id", Type: "serial", Resource: "model_draft.a"}
	b := &Field{Name: "id", Type: "serial", Resource: "model_draft.b"}
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.String(), b.String())
	assert.NotContains(t, a.String(), "model_draft")

	b.Unit = "MW"
	assert.False(t, a.Equal(b))
}

func TestParseOrientation(t *testing.T) {
	for _, s := range []string{"", "left", "middle", "right"} {
		_, err := ParseOrientation(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseOrientation("center")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2016-06-16", "2017-01-01T00:00+01", "2019-10-15T12:00:00Z", "2020-03-01T10:00:00+01:00", "2018"} {
		_, err := ParseDate(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseDate("yesterday")
	assert.Error(t, err)
	assert.True(t, ValidDate(""))
}

func TestForeignKeyTargetResource(t *testing.T) {
	fk := &ForeignKey{References: []*Reference{{
		Source: &Field{Name: "region_id", Resource: "a"},
		Target: &Field{Name: "id", Resource: "model_draft.oep_region"},
	}}}
	assert.Equal(t, "model_draft.oep_region", fk.TargetResource())
}

func TestMetadataLookups(t *testing.T) {
	md := &Metadata{Resources: []*Resource{
		nil,
		{Name: "a", Schema: &Schema{Fields: []*Field{{Name: "id"}}}},
	}}
	require.NotNil(t, md.Resource("a"))
	assert.Nil(t, md.Resource("b"))
	assert.NotNil(t, md.Resource("a").Field("id"))
	assert.Nil(t, md.Resource("a").Field("missing"))
}

// countingVisitor records the kinds it sees.
type countingVisitor struct{ seen []Kind }

func (c *countingVisitor) record(k Kind) (Kind, error) { c.seen = append(c.seen, k); return k, nil }

func (c *countingVisitor) VisitMetadata(n *Metadata) (Kind, error)       { return c.record(n.Kind()) }
func (c *countingVisitor) VisitContext(n *Context) (Kind, error)         { return c.record(n.Kind()) }
func (c *countingVisitor) VisitSpatial(n *Spatial) (Kind, error)         { return c.record(n.Kind()) }
func (c *countingVisitor) VisitTemporal(n *Temporal) (Kind, error)       { return c.record(n.Kind()) }
func (c *countingVisitor) VisitTimeseries(n *Timeseries) (Kind, error)   { return c.record(n.Kind()) }
func (c *countingVisitor) VisitSource(n *Source) (Kind, error)           { return c.record(n.Kind()) }
func (c *countingVisitor) VisitTermsOfUse(n *TermsOfUse) (Kind, error)   { return c.record(n.Kind()) }
func (c *countingVisitor) VisitLicense(n *License) (Kind, error)         { return c.record(n.Kind()) }
func (c *countingVisitor) VisitPerson(n *Person) (Kind, error)           { return c.record(n.Kind()) }
func (c *countingVisitor) VisitContributor(n *Contributor) (Kind, error) { return c.record(n.Kind()) }
func (c *countingVisitor) VisitResource(n *Resource) (Kind, error)       { return c.record(n.Kind()) }
func (c *countingVisitor) VisitSchema(n *Schema) (Kind, error)           { return c.record(n.Kind()) }
func (c *countingVisitor) VisitField(n *Field) (Kind, error)             { return c.record(n.Kind()) }
func (c *countingVisitor) VisitForeignKey(n *ForeignKey) (Kind, error)   { return c.record(n.Kind()) }
func (c *countingVisitor) VisitReference(n *Reference) (Kind, error)     { return c.record(n.Kind()) }
func (c *countingVisitor) VisitDialect(n *Dialect) (Kind, error)         { return c.record(n.Kind()) }
func (c *countingVisitor) VisitReview(n *Review) (Kind, error) {
	return 0, Unsupported("counting", n.Kind())
}
func (c *countingVisitor) VisitMetaComment(n *MetaComment) (Kind, error) { return c.record(n.Kind()) }

func TestVisitAllSkipsNilEntries(t *testing.T) {
	v := &countingVisitor{}
	out, err := VisitAll[Kind](v, []*Field{{Name: "a"}, nil, {Name: "b"}})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindField, KindField}, out)

	out, err = VisitAll[Kind](v, []*Source(nil))
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestVisitReportsUnsupportedKinds(t *testing.T) {
	_, err := Visit[Kind](&countingVisitor{}, &Review{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotImplemented))
	assert.Contains(t, err.Error(), "Review")

	_, err = Visit[Kind](&countingVisitor{}, nil)
	assert.ErrorIs(t, err, apperr.ErrNotImplemented)
}
