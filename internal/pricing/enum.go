package pricing

// RateBasis tells how a base rate is multiplied into a stay price.
type RateBasis string

const (
	PerPersonPerDay RateBasis = "PER_PERSON_PER_DAY"
	PerRoomPerDay   RateBasis = "PER_ROOM_PER_DAY"
)

func (b RateBasis) Valid() bool {
	return b == PerPersonPerDay || b == PerRoomPerDay
}

type RuleKind string

const (
	KindSupplement RuleKind = "SUPPLEMENT"
	KindDiscount   RuleKind = "DISCOUNT"
)

func ParseRuleKind(s string) (RuleKind, error) {
	switch RuleKind(s) {
	case KindSupplement, KindDiscount:
		return RuleKind(s), nil
	}

	switch s {
	case "supplement":
		return KindSupplement, nil
	case "discount":
		return KindDiscount, nil
	}

	return "", ErrUnknownRuleKind
}

// Weekday codes follow ISO 8601: 1 is Monday, 7 is Sunday.
const (
	Monday  = 1
	Sunday  = 7
	weekLen = 7
)

// Transport and activity kinds only label products for operators.
type TransportKind string

const (
	TransportFlight TransportKind = "flight"
	TransportBus    TransportKind = "bus"
	TransportTrain  TransportKind = "train"
	TransportFerry  TransportKind = "ferry"
	TransportCar    TransportKind = "car"
)

type ActivityKind string

const (
	ActivityExcursion ActivityKind = "excursion"
	ActivityTour      ActivityKind = "tour"
	ActivityTransfer  ActivityKind = "transfer"
	ActivityTicket    ActivityKind = "ticket"
	ActivityWellness  ActivityKind = "wellness"
)

type Label struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type Taxonomies struct {
	Transport []Label `json:"transport"`
	Activity  []Label `json:"activity"`
	Basis     []Label `json:"basis"`
}

func ListTaxonomies() Taxonomies {
	return Taxonomies{
		Transport: []Label{
			{Code: string(TransportFlight), Label: "Flight"},
			{Code: string(TransportBus), Label: "Bus"},
			{Code: string(TransportTrain), Label: "Train"},
			{Code: string(TransportFerry), Label: "Ferry"},
			{Code: string(TransportCar), Label: "Rental car"},
		},
		Activity: []Label{
			{Code: string(ActivityExcursion), Label: "Excursion"},
			{Code: string(ActivityTour), Label: "Guided tour"},
			{Code: string(ActivityTransfer), Label: "Transfer"},
			{Code: string(ActivityTicket), Label: "Ticket"},
			{Code: string(ActivityWellness), Label: "Wellness"},
		},
		Basis: []Label{
			{Code: string(PerPersonPerDay), Label: "Per person / day"},
			{Code: string(PerRoomPerDay), Label: "Per room / day"},
		},
	}
}
