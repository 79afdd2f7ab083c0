package adapters

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"parcel-admin/internal/core/retry"
	"parcel-admin/internal/features/reports/domain"
	"parcel-admin/internal/features/reports/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names of the marketplace database.
const (
	ConsignmentsCollection = "consignments"
	TravelsCollection      = "traveldetails"
	AssignmentsCollection  = "consignmenttocarries"
	RequestsCollection     = "consignment_carry_riders"
	EarningsCollection     = "earnings"
	HistoriesCollection    = "travelhistories"
	ProfilesCollection     = "userprofiles"
)

var (
	consignmentSearchFields = []string{
		"consignmentId", "phoneNumber", "startinglocation", "goinglocation",
		"recievername", "recieverphone", "Description", "category", "status",
	}
	travelSearchFields = []string{
		"travelId", "phoneNumber", "username", "Leavinglocation", "Goinglocation",
		"travelMode", "status",
	}

	// stableSort makes skip/limit pages concatenate without duplicates.
	stableSort = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}
)

// MongoRepository implements ports.Repository over the marketplace collections.
// It never writes.
type MongoRepository struct {
	consignments *mongo.Collection
	travels      *mongo.Collection
	assignments  *mongo.Collection
	requests     *mongo.Collection
	earnings     *mongo.Collection
	histories    *mongo.Collection
	profiles     *mongo.Collection
	policy       retry.Policy
}

// NewMongoRepository creates a MongoRepository. Every query runs under policy.
func NewMongoRepository(db *mongo.Database, policy retry.Policy) *MongoRepository {
	return &MongoRepository{
		consignments: db.Collection(ConsignmentsCollection),
		travels:      db.Collection(TravelsCollection),
		assignments:  db.Collection(AssignmentsCollection),
		requests:     db.Collection(RequestsCollection),
		earnings:     db.Collection(EarningsCollection),
		histories:    db.Collection(HistoriesCollection),
		profiles:     db.Collection(ProfilesCollection),
		policy:       policy,
	}
}

// CountConsignments implements ports.Repository.
func (r *MongoRepository) CountConsignments(ctx context.Context, f ports.Filter) (int64, error) {
	return r.count(ctx, r.consignments, filterDoc(f, consignmentSearchFields))
}

// ListConsignments implements ports.Repository.
func (r *MongoRepository) ListConsignments(ctx context.Context, f ports.Filter, w ports.Window) ([]domain.Consignment, error) {
	return find[domain.Consignment](ctx, r.policy, r.consignments, filterDoc(f, consignmentSearchFields), pageOptions(w))
}

// ConsignmentsByID implements ports.Repository.
func (r *MongoRepository) ConsignmentsByID(ctx context.Context, consignmentIDs []string) ([]domain.Consignment, error) {
	if len(consignmentIDs) == 0 {
		return nil, nil
	}
	return find[domain.Consignment](ctx, r.policy, r.consignments,
		bson.M{"consignmentId": bson.M{"$in": consignmentIDs}},
		options.Find().SetSort(stableSort))
}

// CountSenders implements ports.Repository.
func (r *MongoRepository) CountSenders(ctx context.Context, f ports.Filter) (int64, error) {
	return r.countGroups(ctx, r.consignments, filterDoc(f, consignmentSearchFields))
}

// ListSenders implements ports.Repository.
func (r *MongoRepository) ListSenders(ctx context.Context, f ports.Filter, w ports.Window) ([]string, error) {
	return r.listGroups(ctx, r.consignments, filterDoc(f, consignmentSearchFields), w)
}

// ConsignmentsBySender implements ports.Repository.
func (r *MongoRepository) ConsignmentsBySender(ctx context.Context, phones []string, f ports.Filter) ([]domain.Consignment, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	filter := filterDoc(f, consignmentSearchFields)
	filter["phoneNumber"] = bson.M{"$in": phones}
	return find[domain.Consignment](ctx, r.policy, r.consignments, filter, options.Find().SetSort(stableSort))
}

// CountTravelDetails implements ports.Repository.
func (r *MongoRepository) CountTravelDetails(ctx context.Context, f ports.Filter) (int64, error) {
	return r.count(ctx, r.travels, filterDoc(f, travelSearchFields))
}

// ListTravelDetails implements ports.Repository.
func (r *MongoRepository) ListTravelDetails(ctx context.Context, f ports.Filter, w ports.Window) ([]domain.TravelDetail, error) {
	return find[domain.TravelDetail](ctx, r.policy, r.travels, filterDoc(f, travelSearchFields), pageOptions(w))
}

// TravelDetailsByTravelID implements ports.Repository.
func (r *MongoRepository) TravelDetailsByTravelID(ctx context.Context, travelIDs []string) ([]domain.TravelDetail, error) {
	if len(travelIDs) == 0 {
		return nil, nil
	}
	return find[domain.TravelDetail](ctx, r.policy, r.travels,
		bson.M{"travelId": bson.M{"$in": travelIDs}},
		options.Find().SetSort(stableSort))
}

// TravelDetailsByPhone implements ports.Repository. Trips are newest first.
func (r *MongoRepository) TravelDetailsByPhone(ctx context.Context, phones []string) ([]domain.TravelDetail, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	return find[domain.TravelDetail](ctx, r.policy, r.travels,
		bson.M{"phoneNumber": bson.M{"$in": phones}},
		options.Find().SetSort(stableSort))
}

// CountTravelers implements ports.Repository.
func (r *MongoRepository) CountTravelers(ctx context.Context, f ports.Filter) (int64, error) {
	return r.countGroups(ctx, r.travels, filterDoc(f, travelSearchFields))
}

// ListTravelers implements ports.Repository.
func (r *MongoRepository) ListTravelers(ctx context.Context, f ports.Filter, w ports.Window) ([]string, error) {
	return r.listGroups(ctx, r.travels, filterDoc(f, travelSearchFields), w)
}

// CarryAssignments implements ports.Repository.
func (r *MongoRepository) CarryAssignments(ctx context.Context, sel ports.LinkSelector) ([]domain.CarryAssignment, error) {
	if sel.IsEmpty() {
		return nil, nil
	}
	return find[domain.CarryAssignment](ctx, r.policy, r.assignments, selectorDoc(sel, "consignmentId"))
}

// CarryRequests implements ports.Repository.
func (r *MongoRepository) CarryRequests(ctx context.Context, sel ports.LinkSelector, acceptedOnly bool) ([]domain.CarryRequest, error) {
	if sel.IsEmpty() {
		return nil, nil
	}
	filter := selectorDoc(sel, "consignmentId")
	if acceptedOnly {
		filter["status"] = primitive.Regex{Pattern: "^" + domain.StatusAccepted + "$", Options: "i"}
	}
	return find[domain.CarryRequest](ctx, r.policy, r.requests, filter)
}

// TravelHistories implements ports.Repository.
func (r *MongoRepository) TravelHistories(ctx context.Context, sel ports.LinkSelector) ([]domain.TravelHistory, error) {
	if sel.IsEmpty() {
		return nil, nil
	}
	return find[domain.TravelHistory](ctx, r.policy, r.histories, selectorDoc(sel, "consignmentDetails.consignmentId"))
}

// Profiles implements ports.Repository.
func (r *MongoRepository) Profiles(ctx context.Context, phones []string) ([]domain.Profile, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	return find[domain.Profile](ctx, r.policy, r.profiles, bson.M{"phoneNumber": bson.M{"$in": phones}})
}

// Earnings implements ports.Repository.
func (r *MongoRepository) Earnings(ctx context.Context, phones []string) ([]domain.Earning, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	return find[domain.Earning](ctx, r.policy, r.earnings, bson.M{"phoneNumber": bson.M{"$in": phones}})
}

func (r *MongoRepository) count(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
	var n int64
	name := coll.Name() + ".count"
	err := retry.Do(ctx, r.policy, name, func(ctx context.Context) error {
		var err error
		n, err = coll.CountDocuments(ctx, filter)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// groupStages reduces matching documents to one per phone number, most recently
// created first.
func groupStages(filter bson.M) mongo.Pipeline {
	filter["phoneNumber"] = bson.M{"$nin": bson.A{nil, ""}}
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$phoneNumber",
			"latest": bson.M{"$max": "$createdAt"},
		}}},
	}
}

func (r *MongoRepository) countGroups(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
	pipeline := append(groupStages(filter), bson.D{{Key: "$count", Value: "total"}})

	rows, err := aggregate[struct {
		Total int64 `bson:"total"`
	}](ctx, r.policy, coll, coll.Name()+".countGroups", pipeline)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *MongoRepository) listGroups(ctx context.Context, coll *mongo.Collection, filter bson.M, w ports.Window) ([]string, error) {
	pipeline := append(groupStages(filter),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "latest", Value: -1}, {Key: "_id", Value: 1}}}},
		bson.D{{Key: "$skip", Value: w.Skip}},
		bson.D{{Key: "$limit", Value: w.Limit}},
	)

	rows, err := aggregate[struct {
		Phone string `bson:"_id"`
	}](ctx, r.policy, coll, coll.Name()+".listGroups", pipeline)
	if err != nil {
		return nil, err
	}
	phones := make([]string, 0, len(rows))
	for _, row := range rows {
		phones = append(phones, row.Phone)
	}
	return phones, nil
}

func find[T any](ctx context.Context, policy retry.Policy, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	var out []T
	name := coll.Name() + ".find"
	err := retry.Do(ctx, policy, name, func(ctx context.Context) error {
		cur, err := coll.Find(ctx, filter, opts...)
		if err != nil {
			return err
		}
		var batch []T
		if err := cur.All(ctx, &batch); err != nil {
			return err
		}
		out = batch
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func aggregate[T any](ctx context.Context, policy retry.Policy, coll *mongo.Collection, name string, pipeline mongo.Pipeline) ([]T, error) {
	var out []T
	err := retry.Do(ctx, policy, name, func(ctx context.Context) error {
		cur, err := coll.Aggregate(ctx, pipeline)
		if err != nil {
			return err
		}
		var batch []T
		if err := cur.All(ctx, &batch); err != nil {
			return err
		}
		out = batch
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// filterDoc matches a case-insensitive literal substring on any of fields and
// a createdAt range.
func filterDoc(f ports.Filter, fields []string) bson.M {
	filter := bson.M{}

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		or := make(bson.A, 0, len(fields))
		for _, field := range fields {
			or = append(or, bson.M{field: pattern})
		}
		filter["$or"] = or
	}

	if !f.Range.IsZero() {
		created := bson.M{}
		if !f.Range.Start.IsZero() {
			created["$gte"] = f.Range.Start
		}
		if !f.Range.End.IsZero() {
			created["$lte"] = f.Range.End
		}
		filter["createdAt"] = created
	}
	return filter
}

// selectorDoc matches link records by consignment id (at idPath) or travel id.
func selectorDoc(sel ports.LinkSelector, idPath string) bson.M {
	or := bson.A{}
	if len(sel.ConsignmentIDs) > 0 {
		or = append(or, bson.M{idPath: bson.M{"$in": sel.ConsignmentIDs}})
	}
	if len(sel.TravelIDs) > 0 {
		or = append(or, bson.M{"travelId": bson.M{"$in": sel.TravelIDs}})
	}
	if len(or) == 1 {
		return or[0].(bson.M)
	}
	return bson.M{"$or": or}
}

func pageOptions(w ports.Window) *options.FindOptions {
	return options.Find().
		SetSort(stableSort).
		SetSkip(w.Skip).
		SetLimit(w.Limit)
}
