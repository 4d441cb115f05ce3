// Package entities provides typed access to the marketplace's managed
// records. Every record type shares the same REST shape, so one generic
// service covers them all; when the backend is unreachable the services can
// fall back to an in-memory demo dataset.
package entities

// Provider is a care provider listed on the marketplace.
type Provider struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Specialty     string  `json:"specialty"`
	Location      string  `json:"location"`
	Rating        float64 `json:"rating"`
	Status        string  `json:"status"`
	JoinedDate    string  `json:"joinedDate"`
	TotalPatients int     `json:"totalPatients"`
	Revenue       float64 `json:"revenue"`
}

func (p Provider) EntityID() string { return p.ID }

// Patient is a registered marketplace patient.
type Patient struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Age               int    `json:"age"`
	Gender            string `json:"gender"`
	Address           string `json:"address"`
	LastVisit         string `json:"lastVisit"`
	Status            string `json:"status"`
	ProviderID        string `json:"providerId"`
	TotalAppointments int    `json:"totalAppointments"`
}

func (p Patient) EntityID() string { return p.ID }

// Administrator is a portal operator account.
type Administrator struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Status      string   `json:"status"`
	LastLogin   string   `json:"lastLogin"`
	Permissions []string `json:"permissions"`
	CreatedAt   string   `json:"createdAt"`
}

func (a Administrator) EntityID() string { return a.ID }

// Commission is a provider commission entry.
type Commission struct {
	ID           string  `json:"id"`
	ProviderID   string  `json:"providerId"`
	ProviderName string  `json:"providerName"`
	Amount       float64 `json:"amount"`
	Percentage   float64 `json:"percentage"`
	Status       string  `json:"status"`
	Period       string  `json:"period"`
	CreatedAt    string  `json:"createdAt"`
	PaidAt       string  `json:"paidAt,omitempty"`
}

func (c Commission) EntityID() string { return c.ID }

// Payment is a patient payment record.
type Payment struct {
	ID            string  `json:"id"`
	PatientID     string  `json:"patientId"`
	PatientName   string  `json:"patientName"`
	ProviderID    string  `json:"providerId"`
	ProviderName  string  `json:"providerName"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	Method        string  `json:"method"`
	TransactionID string  `json:"transactionId"`
	CreatedAt     string  `json:"createdAt"`
	ProcessedAt   string  `json:"processedAt,omitempty"`
}

func (p Payment) EntityID() string { return p.ID }

// MarketService is a bookable service offered by a provider.
type MarketService struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Duration      int     `json:"duration"`
	ProviderID    string  `json:"providerId"`
	ProviderName  string  `json:"providerName"`
	Status        string  `json:"status"`
	Rating        float64 `json:"rating"`
	TotalBookings int     `json:"totalBookings"`
	CreatedAt     string  `json:"createdAt"`
}

func (s MarketService) EntityID() string { return s.ID }

// Review is a patient review of a provider's service.
type Review struct {
	ID           string  `json:"id"`
	PatientID    string  `json:"patientId"`
	PatientName  string  `json:"patientName"`
	ProviderID   string  `json:"providerId"`
	ProviderName string  `json:"providerName"`
	ServiceID    string  `json:"serviceId"`
	ServiceName  string  `json:"serviceName"`
	Rating       float64 `json:"rating"`
	Comment      string  `json:"comment"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func (r Review) EntityID() string { return r.ID }

// Communication is an outbound message to a marketplace user.
type Communication struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Recipient   string `json:"recipient"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	ScheduledAt string `json:"scheduledAt,omitempty"`
	SentAt      string `json:"sentAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func (c Communication) EntityID() string { return c.ID }

// Notification is an in-portal notification.
type Notification struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	RecipientID string `json:"recipientId"`
	CreatedAt   string `json:"createdAt"`
	ReadAt      string `json:"readAt,omitempty"`
}

func (n Notification) EntityID() string { return n.ID }
