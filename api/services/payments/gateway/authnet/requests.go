package authnet

// Request bodies for the JSON API. Field order matters: the API validates
// the JSON against its XML schema, so merchantAuthentication always comes first.

const opaqueDataDescriptor = "COMMON.ACCEPT.INAPP.PAYMENT"

// totalOccurrences value the API treats as an ongoing subscription.
const ongoingOccurrences = "9999"

type merchantAuthentication struct {
	Name           string `json:"name"`
	TransactionKey string `json:"transactionKey"`
}

type opaqueData struct {
	DataDescriptor string `json:"dataDescriptor"`
	DataValue      string `json:"dataValue"`
}

type payment struct {
	OpaqueData opaqueData `json:"opaqueData"`
}

func opaquePayment(nonce string) payment {
	return payment{OpaqueData: opaqueData{DataDescriptor: opaqueDataDescriptor, DataValue: nonce}}
}

type billTo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type order struct {
	Description string `json:"description"`
}

type createTransactionRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
	TransactionRequest     transactionRequest     `json:"transactionRequest"`
}

type transactionRequest struct {
	TransactionType string  `json:"transactionType"`
	Amount          string  `json:"amount"`
	Payment         payment `json:"payment"`
	Order           order   `json:"order"`
}

type createCustomerProfileRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
	Profile                customerProfile        `json:"profile"`
	ValidationMode         string                 `json:"validationMode"`
}

type customerProfile struct {
	MerchantCustomerID string                 `json:"merchantCustomerId"`
	Email              string                 `json:"email"`
	PaymentProfiles    *profilePaymentProfile `json:"paymentProfiles,omitempty"`
}

type profilePaymentProfile struct {
	CustomerType string  `json:"customerType"`
	BillTo       billTo  `json:"billTo"`
	Payment      payment `json:"payment"`
}

type createCustomerPaymentProfileRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
	CustomerProfileID      string                 `json:"customerProfileId"`
	PaymentProfile         paymentProfile         `json:"paymentProfile"`
	ValidationMode         string                 `json:"validationMode"`
}

type paymentProfile struct {
	BillTo                billTo  `json:"billTo"`
	Payment               payment `json:"payment"`
	DefaultPaymentProfile bool    `json:"defaultPaymentProfile"`
}

type arbCreateSubscriptionRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
	Subscription           arbSubscription        `json:"subscription"`
}

type arbSubscription struct {
	Name            string             `json:"name"`
	PaymentSchedule paymentSchedule    `json:"paymentSchedule"`
	Amount          string             `json:"amount"`
	Profile         subscriptionTarget `json:"profile"`
}

type paymentSchedule struct {
	Interval         interval `json:"interval"`
	StartDate        string   `json:"startDate"`
	TotalOccurrences string   `json:"totalOccurrences"`
}

type interval struct {
	Length string `json:"length"`
	Unit   string `json:"unit"`
}

type subscriptionTarget struct {
	CustomerProfileID        string `json:"customerProfileId"`
	CustomerPaymentProfileID string `json:"customerPaymentProfileId"`
}

type arbSubscriptionIDRequest struct {
	MerchantAuthentication merchantAuthentication `json:"merchantAuthentication"`
	SubscriptionID         string                 `json:"subscriptionId"`
}
