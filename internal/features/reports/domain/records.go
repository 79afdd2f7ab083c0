package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Text is a loosely typed scalar. Numbers and booleans are read as their text.
type Text string

// UnmarshalBSONValue decodes strings, numbers and booleans; anything else is empty.
func (t *Text) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: bt, Value: data}

	switch bt {
	case bsontype.String:
		*t = Text(rv.StringValue())
	case bsontype.Double:
		*t = Text(strconv.FormatFloat(rv.Double(), 'f', -1, 64))
	case bsontype.Int32:
		*t = Text(strconv.FormatInt(int64(rv.Int32()), 10))
	case bsontype.Int64:
		*t = Text(strconv.FormatInt(rv.Int64(), 10))
	case bsontype.Decimal128:
		*t = Text(rv.Decimal128().String())
	case bsontype.Boolean:
		*t = Text(strconv.FormatBool(rv.Boolean()))
	case bsontype.DateTime:
		*t = Text(rv.Time().UTC().Format(time.RFC3339))
	default:
		*t = ""
	}
	return nil
}

// Dimensions of a parcel.
type Dimensions struct {
	Length  Text `bson:"length" json:"length"`
	Breadth Text `bson:"breadth" json:"breadth"`
	Height  Text `bson:"height" json:"height"`
	Unit    Text `bson:"unit" json:"unit"`
}

// Consignment is a parcel posted by a sender.
type Consignment struct {
	ID                   primitive.ObjectID `bson:"_id"`
	PhoneNumber          string             `bson:"phoneNumber"`
	StartingLocation     string             `bson:"startinglocation"`
	GoingLocation        string             `bson:"goinglocation"`
	FullStartingLocation string             `bson:"fullstartinglocation"`
	FullGoingLocation    string             `bson:"fullgoinglocation"`
	ReceiverName         string             `bson:"recievername"`
	ReceiverPhone        string             `bson:"recieverphone"`
	Description          string             `bson:"Description"`
	Category             string             `bson:"category"`
	Subcategory          string             `bson:"subcategory"`
	Weight               Text               `bson:"weight"`
	DimensionalWeight    Text               `bson:"dimensionalweight"`
	Dimensions           *Dimensions        `bson:"dimensions"`
	HandleWithCare       bool               `bson:"handleWithCare"`
	SpecialRequest       string             `bson:"specialRequest"`
	DateOfSending        time.Time          `bson:"dateOfSending"`
	ConsignmentID        string             `bson:"consignmentId"`
	Earning              Amount             `bson:"earning"`
	Distance             Text               `bson:"distance"`
	Duration             Text               `bson:"duration"`
	Status               string             `bson:"status"`
	PaymentStatus        string             `bson:"paymentStatus"`
	CreatedAt            time.Time          `bson:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt"`
}

// TravelDetail is one trip offered by a traveler.
type TravelDetail struct {
	ID                primitive.ObjectID `bson:"_id"`
	UserID            string             `bson:"userId"`
	PhoneNumber       string             `bson:"phoneNumber"`
	Username          string             `bson:"username"`
	LeavingLocation   string             `bson:"Leavinglocation"`
	GoingLocation     string             `bson:"Goinglocation"`
	Distance          Text               `bson:"distance"`
	Duration          Text               `bson:"duration"`
	TravelMode        string             `bson:"travelMode"`
	TravelModeNumber  Text               `bson:"travelmode_number"`
	TravelDate        time.Time          `bson:"travelDate"`
	ExpectedStartTime Text               `bson:"expectedStartTime"`
	ExpectedEndTime   Text               `bson:"expectedEndTime"`
	ExpectedEarning   Amount             `bson:"expectedearning"`
	PayableAmount     Amount             `bson:"payableAmount"`
	TE                Text               `bson:"TE"`
	Discount          Text               `bson:"discount"`
	Weight            Text               `bson:"weight"`
	TravelID          string             `bson:"travelId"`
	Status            string             `bson:"status"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

// CarryAssignment links an accepted consignment to a trip.
type CarryAssignment struct {
	ID            primitive.ObjectID `bson:"_id"`
	ConsignmentID string             `bson:"consignmentId"`
	TravelID      string             `bson:"travelId"`
	Sender        string             `bson:"sender"`
	Receiver      string             `bson:"receiver"`
	SenderPhone   string             `bson:"senderphone"`
	ReceiverPhone string             `bson:"receiverphone"`
	Earning       Amount             `bson:"earning"`
	Status        string             `bson:"status"`
	DeliveredAt   Text               `bson:"dateandtimeofdelivery"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

// CarryRequest is an offer to carry a consignment on a trip.
type CarryRequest struct {
	ID            primitive.ObjectID `bson:"_id"`
	PhoneNumber   string             `bson:"phoneNumber"`
	ConsignmentID string             `bson:"consignmentId"`
	TravellerName string             `bson:"travellername"`
	TravelMode    string             `bson:"travelmode"`
	TravelID      string             `bson:"travelId"`
	Earning       Amount             `bson:"earning"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// Transaction is one payout entry on an Earning record.
type Transaction struct {
	Title         string    `bson:"title"`
	TravelID      string    `bson:"travelId"`
	Amount        Amount    `bson:"amount"`
	PaymentMethod string    `bson:"paymentMethod"`
	PaymentID     string    `bson:"paymentId"`
	Status        string    `bson:"status"`
	Timestamp     time.Time `bson:"timestamp"`
}

// Earning is the running payout ledger of one phone number.
type Earning struct {
	ID            primitive.ObjectID `bson:"_id"`
	PhoneNumber   string             `bson:"phoneNumber"`
	TotalEarnings Amount             `bson:"totalEarnings"`
	Transactions  []Transaction      `bson:"transactions"`
}

// HistoryEntry is a consignment snapshot recorded on a trip.
type HistoryEntry struct {
	ConsignmentID string    `bson:"consignmentId"`
	Status        string    `bson:"status"`
	Weight        Text      `bson:"weight"`
	Dimensions    Text      `bson:"dimensions"`
	Pickup        string    `bson:"pickup"`
	Drop          string    `bson:"drop"`
	Earning       Amount    `bson:"earning"`
	Timestamp     time.Time `bson:"timestamp"`
}

// TravelHistory is a traveler's log of one trip.
type TravelHistory struct {
	ID                 primitive.ObjectID `bson:"_id"`
	PhoneNumber        string             `bson:"phoneNumber"`
	TravelID           string             `bson:"travelId"`
	TravelMode         string             `bson:"travelMode"`
	Status             string             `bson:"status"`
	ConsignmentDetails []HistoryEntry     `bson:"consignmentDetails"`
	CreatedAt          time.Time          `bson:"createdAt"`
}

// GeoPoint is a GeoJSON point, coordinates ordered [lng, lat].
type GeoPoint struct {
	Coordinates []float64 `bson:"coordinates"`
}

// Profile is a marketplace user.
type Profile struct {
	ID              primitive.ObjectID `bson:"_id"`
	UserID          string             `bson:"userId"`
	FirstName       string             `bson:"firstName"`
	LastName        string             `bson:"lastName"`
	Email           string             `bson:"email"`
	PhoneNumber     string             `bson:"phoneNumber"`
	Role            string             `bson:"role"`
	IsVerified      bool               `bson:"isVerified"`
	CurrentLocation *GeoPoint          `bson:"currentLocation"`
	CreatedAt       time.Time          `bson:"createdAt"`
	LastUpdated     time.Time          `bson:"lastUpdated"`
}

// FullName joins first and last name.
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Address renders the current location as "lat, lng", or "" when unknown.
func (p *Profile) Address() string {
	if p.CurrentLocation == nil || len(p.CurrentLocation.Coordinates) < 2 {
		return ""
	}
	c := p.CurrentLocation.Coordinates
	return fmt.Sprintf("%v, %v", c[1], c[0])
}
