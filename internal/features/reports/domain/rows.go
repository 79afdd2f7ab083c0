package domain

// ConsolidatedRow is one consignment with both parties and derived figures.
// The money columns are exact decimals written as their shortest float form, so
// tneAmount equals totalAmountSender - amountToBePaidToTraveler in decimal
// arithmetic; float subtraction on the client may differ in the last digit.
type ConsolidatedRow struct {
	ConsignmentID            string      `json:"consignmentId"`
	ConsignmentStatus        string      `json:"consignmentStatus"`
	SenderID                 string      `json:"senderId"`
	SenderName               string      `json:"senderName"`
	SenderMobileNo           string      `json:"senderMobileNo"`
	SenderAddress            string      `json:"senderAddress"`
	TotalAmountSender        float64     `json:"totalAmountSender"`
	PaymentStatus            string      `json:"paymentStatus"`
	TravelerID               string      `json:"travelerId"`
	TravelerAcceptanceDate   string      `json:"travelerAcceptanceDate"`
	TravelerName             string      `json:"travelerName"`
	TravelerMobileNo         string      `json:"travelerMobileNo"`
	TravelerAddress          string      `json:"travelerAddress"`
	AmountToBePaidToTraveler float64     `json:"amountToBePaidToTraveler"`
	TravelerPaymentStatus    string      `json:"travelerPaymentStatus"`
	TravelerTotalEarnings    float64     `json:"travelerTotalEarnings"`
	TravelMode               string      `json:"travelMode"`
	TravelStartDate          string      `json:"travelStartDate"`
	TravelEndDate            string      `json:"travelEndDate"`
	RecepientName            string      `json:"recepientName"`
	RecepientAddress         string      `json:"recepientAddress"`
	RecepientPhoneNo         string      `json:"recepientPhoneNo"`
	ReceivedDate             string      `json:"receivedDate"`
	TnEAmount                float64     `json:"tneAmount"`
	TaxComponent             float64     `json:"taxComponent"`
	LinkSource               LinkSource  `json:"linkSource"`
	Weight                   Text        `json:"weight"`
	Category                 string      `json:"category"`
	Subcategory              string      `json:"subcategory"`
	Description              string      `json:"description"`
	Dimensions               *Dimensions `json:"dimensions,omitempty"`
	Distance                 Text        `json:"distance"`
	Duration                 Text        `json:"duration"`
	HandleWithCare           bool        `json:"handleWithCare"`
	SpecialRequest           string      `json:"specialRequest"`
	DateOfSending            string      `json:"dateOfSending"`
	CreatedAt                string      `json:"createdAt"`
	UpdatedAt                string      `json:"updatedAt"`
}

// SenderConsignmentRow is the sender-side view of one consignment.
type SenderConsignmentRow struct {
	ConsignmentID     string  `json:"consignmentId"`
	Description       string  `json:"description"`
	Status            string  `json:"status"`
	TotalAmountSender float64 `json:"totalAmountSender"`
	PaymentStatus     string  `json:"paymentStatus"`
	Distance          Text    `json:"distance"`
	Category          string  `json:"category"`
	Weight            Text    `json:"weight"`
	DimensionalWeight Text    `json:"dimensionalweight"`
	HasTraveler       string  `json:"hasTraveler"`
	TravelerName      string  `json:"travelerName"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// SenderReportRow groups a sender's consignments.
type SenderReportRow struct {
	SenderID               string                 `json:"senderId"`
	Name                   string                 `json:"name"`
	PhoneNo                string                 `json:"phoneNo"`
	Email                  string                 `json:"email"`
	Address                string                 `json:"address"`
	NoOfConsignment        int                    `json:"noOfConsignment"`
	CompletedConsignments  int                    `json:"completedConsignments"`
	PendingConsignments    int                    `json:"pendingConsignments"`
	InProgressConsignments int                    `json:"inProgressConsignments"`
	StatusCounts           map[string]int         `json:"statusCounts"`
	CompletionRate         float64                `json:"completionRate"`
	TotalAmount            float64                `json:"totalAmount"`
	AverageAmount          float64                `json:"averageAmount"`
	StatusOfConsignment    string                 `json:"statusOfConsignment"`
	Payment                string                 `json:"payment"`
	IsVerified             bool                   `json:"isVerified"`
	SenderConsignment      []SenderConsignmentRow `json:"senderConsignment"`
	CreatedAt              string                 `json:"createdAt"`
	LastUpdated            string                 `json:"lastUpdated"`
}

// TravelerConsignmentRow is the traveler-side view of one carried consignment.
type TravelerConsignmentRow struct {
	ConsignmentID         string     `json:"consignmentId"`
	TravelID              string     `json:"travelId"`
	Description           string     `json:"description"`
	Status                string     `json:"status"`
	AmountToTraveler      float64    `json:"amountToBePaidToTraveler"`
	TravelerPaymentStatus string     `json:"travelerPaymentStatus"`
	TravelMode            string     `json:"travelMode"`
	AcceptanceDate        string     `json:"travelerAcceptanceDate"`
	Distance              Text       `json:"distance"`
	Category              string     `json:"category"`
	Weight                Text       `json:"weight"`
	Pickup                string     `json:"pickup"`
	Delivery              string     `json:"delivery"`
	LinkSource            LinkSource `json:"linkSource"`
}

// TransactionRow is one recent payout.
type TransactionRow struct {
	Title         string  `json:"title"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	Timestamp     string  `json:"timestamp"`
}

// TravelerReportRow groups the consignments resolved to one traveler.
type TravelerReportRow struct {
	TravelerID          string                   `json:"travelerId"`
	Name                string                   `json:"name"`
	PhoneNo             string                   `json:"phoneNo"`
	Email               string                   `json:"email"`
	Address             string                   `json:"address"`
	NoOfConsignment     int                      `json:"noOfConsignment"`
	TotalAmount         float64                  `json:"totalAmount"`
	DerivedAmount       float64                  `json:"derivedAmount"`
	LedgerAmount        float64                  `json:"ledgerAmount"`
	TravelerConsignment []TravelerConsignmentRow `json:"travelerConsignment"`
	StatusOfConsignment string                   `json:"statusOfConsignment"`
	Payment             string                   `json:"payment"`
	IsVerified          bool                     `json:"isVerified"`
	CompletionRate      float64                  `json:"completionRate"`
	TotalTravels        int                      `json:"totalTravels"`
	CompletedTravels    int                      `json:"completedTravels"`
	RecentTransactions  []TransactionRow         `json:"recentTransactions"`
	CreatedAt           string                   `json:"createdAt"`
	LastUpdated         string                   `json:"lastUpdated"`
}

// TravelDetailsRow is one trip with its request statistics.
type TravelDetailsRow struct {
	TravelID          string  `json:"travelId"`
	TravelerID        string  `json:"travelerId"`
	TravelerName      string  `json:"travelerName"`
	PhoneNumber       string  `json:"phoneNumber"`
	LeavingLocation   string  `json:"leavingLocation"`
	GoingLocation     string  `json:"goingLocation"`
	TravelMode        string  `json:"travelMode"`
	TravelModeNumber  Text    `json:"travelmode_number"`
	TravelDate        string  `json:"travelDate"`
	ExpectedStartTime Text    `json:"expectedStartTime"`
	ExpectedEndTime   Text    `json:"expectedEndTime"`
	Distance          Text    `json:"distance"`
	Duration          Text    `json:"duration"`
	ExpectedEarning   float64 `json:"expectedearning"`
	PayableAmount     float64 `json:"payableAmount"`
	Weight            Text    `json:"weight"`
	TE                Text    `json:"TE"`
	Discount          Text    `json:"discount"`
	Status            string  `json:"status"`
	TotalRequests     int     `json:"totalRequests"`
	AcceptedRequests  int     `json:"acceptedRequests"`
	AcceptanceRate    float64 `json:"acceptanceRate"`
	TotalEarning      float64 `json:"totalEarning"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}
