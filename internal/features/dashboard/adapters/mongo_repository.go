package adapters

import (
	"context"
	"fmt"
	"math"

	"parcel-admin/internal/core/daterange"
	"parcel-admin/internal/core/retry"
	"parcel-admin/internal/features/dashboard/domain"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
)

// source describes where one side's figures live.
type source struct {
	collection string
	region     string
	amount     string
	subKey     string
}

var sources = map[domain.Side]source{
	domain.SideSender:    {collection: "consignments", region: "startinglocation", amount: "earning", subKey: "senderTotalPay"},
	domain.SideTraveller: {collection: "traveldetails", region: "Leavinglocation", amount: "expectedearning", subKey: "totalFare"},
}

// MongoDashboardRepository implements ports.DashboardRepository with server-side
// aggregation.
type MongoDashboardRepository struct {
	db     *mongo.Database
	policy retry.Policy
}

// NewMongoDashboardRepository creates a new MongoDashboardRepository.
func NewMongoDashboardRepository(db *mongo.Database, policy retry.Policy) *MongoDashboardRepository {
	return &MongoDashboardRepository{
		db:     db,
		policy: policy,
	}
}

// Totals counts the side's documents and sums their amounts.
func (r *MongoDashboardRepository) Totals(ctx context.Context, side domain.Side, rng daterange.Range) (domain.Totals, error) {
	src, ok := sources[side]
	if !ok {
		return domain.Totals{}, fmt.Errorf("%w: %q", domain.ErrInvalidRegionType, side)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: createdIn(rng)}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"totalNo":     bson.M{"$sum": 1},
			"totalAmount": bson.M{"$sum": amountExpr(src)},
		}}},
	}

	var rows []struct {
		TotalNo     int64         `bson:"totalNo"`
		TotalAmount bson.RawValue `bson:"totalAmount"`
	}
	if err := r.aggregate(ctx, src.collection+".totals", src.collection, pipeline, &rows); err != nil {
		return domain.Totals{}, err
	}
	if len(rows) == 0 {
		return domain.Totals{Amount: decimal.Zero}, nil
	}
	return domain.Totals{Count: rows[0].TotalNo, Amount: decimalOf(rows[0].TotalAmount)}, nil
}

// RegionBreakdown sums the side's amounts per region and travel mode, largest first.
func (r *MongoDashboardRepository) RegionBreakdown(ctx context.Context, side domain.Side, rng daterange.Range) ([]domain.RegionLine, error) {
	src, ok := sources[side]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRegionType, side)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: createdIn(rng)}},
		{{Key: "$group", Value: bson.M{
			"_id":         bson.M{"state": "$" + src.region, "mode": "$travelMode"},
			"totalAmount": bson.M{"$sum": amountExpr(src)},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":          0,
			"stateWise":    "$_id.state",
			"modeOfTravel": "$_id.mode",
			"totalAmount":  1,
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "totalAmount", Value: -1},
			{Key: "stateWise", Value: 1},
			{Key: "modeOfTravel", Value: 1},
		}}},
	}

	var rows []struct {
		StateWise    bson.RawValue `bson:"stateWise"`
		ModeOfTravel bson.RawValue `bson:"modeOfTravel"`
		TotalAmount  bson.RawValue `bson:"totalAmount"`
	}
	if err := r.aggregate(ctx, src.collection+".regions", src.collection, pipeline, &rows); err != nil {
		return nil, err
	}

	lines := make([]domain.RegionLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.RegionLine{
			StateWise:    stringOf(row.StateWise),
			ModeOfTravel: stringOf(row.ModeOfTravel),
			TotalAmount:  decimalOf(row.TotalAmount).Round(2).InexactFloat64(),
		})
	}
	return lines, nil
}

func (r *MongoDashboardRepository) aggregate(ctx context.Context, name, collection string, pipeline mongo.Pipeline, out interface{}) error {
	coll := r.db.Collection(collection)
	err := retry.Do(ctx, r.policy, name, func(ctx context.Context) error {
		cur, err := coll.Aggregate(ctx, pipeline)
		if err != nil {
			return err
		}
		return cur.All(ctx, out)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func createdIn(rng daterange.Range) bson.M {
	if rng.IsZero() {
		return bson.M{}
	}
	created := bson.M{}
	if !rng.Start.IsZero() {
		created["$gte"] = rng.Start
	}
	if !rng.End.IsZero() {
		created["$lte"] = rng.End
	}
	return bson.M{"createdAt": created}
}

// amountExpr reads the side's sub-amount when the field is a document and the
// field itself otherwise. Unconvertible and negative values count as 0.
func amountExpr(src source) bson.M {
	field := "$" + src.amount
	return bson.M{"$max": bson.A{
		bson.M{"$toDecimal": 0},
		bson.M{"$convert": bson.M{
			"input":   bson.M{"$ifNull": bson.A{field + "." + src.subKey, field}},
			"to":      "decimal",
			"onError": bson.M{"$toDecimal": 0},
			"onNull":  bson.M{"$toDecimal": 0},
		}},
	}}
}

func decimalOf(v bson.RawValue) decimal.Decimal {
	switch v.Type {
	case bsontype.Int32:
		return decimal.NewFromInt32(v.Int32())
	case bsontype.Int64:
		return decimal.NewFromInt(v.Int64())
	case bsontype.Double:
		f := v.Double()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(f)
	case bsontype.Decimal128:
		d, err := decimal.NewFromString(v.Decimal128().String())
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func stringOf(v bson.RawValue) string {
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	return ""
}
