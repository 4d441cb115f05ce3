package entities

// Demo datasets served when the backend is unreachable and demo mode is on.

var demoProviders = []Provider{
	{
		ID: "1", Name: "Dr. Sarah Johnson", Email: "sarah.johnson@healthcare.com",
		Phone: "+1-555-0123", Specialty: "Cardiology", Location: "New York, NY",
		Rating: 4.8, Status: "active", JoinedDate: "2023-01-15",
		TotalPatients: 156, Revenue: 125000,
	},
	{
		ID: "2", Name: "Dr. Michael Chen", Email: "michael.chen@healthcare.com",
		Phone: "+1-555-0124", Specialty: "Dermatology", Location: "Los Angeles, CA",
		Rating: 4.6, Status: "active", JoinedDate: "2023-03-22",
		TotalPatients: 98, Revenue: 87500,
	},
	{
		ID: "3", Name: "Dr. Emily Rodriguez", Email: "emily.rodriguez@healthcare.com",
		Phone: "+1-555-0125", Specialty: "Pediatrics", Location: "Chicago, IL",
		Rating: 4.9, Status: "pending", JoinedDate: "2024-01-10",
		TotalPatients: 45, Revenue: 32000,
	},
}

var demoPatients = []Patient{
	{
		ID: "1", Name: "John Smith", Email: "john.smith@email.com", Phone: "+1-555-0201",
		Age: 45, Gender: "male", Address: "123 Main St, New York, NY",
		LastVisit: "2024-01-15", Status: "active", ProviderID: "1", TotalAppointments: 12,
	},
	{
		ID: "2", Name: "Maria Garcia", Email: "maria.garcia@email.com", Phone: "+1-555-0202",
		Age: 32, Gender: "female", Address: "456 Oak Ave, Los Angeles, CA",
		LastVisit: "2024-02-03", Status: "active", ProviderID: "2", TotalAppointments: 5,
	},
}

var demoAdministrators = []Administrator{
	{
		ID: "1", Name: "Alice Warren", Email: "alice.warren@careport.io", Role: "super_admin",
		Status: "active", LastLogin: "2024-02-10T09:15:00Z",
		Permissions: []string{"users", "billing", "content"}, CreatedAt: "2022-06-01",
	},
	{
		ID: "2", Name: "Ben Okafor", Email: "ben.okafor@careport.io", Role: "moderator",
		Status: "active", LastLogin: "2024-02-09T16:40:00Z",
		Permissions: []string{"content"}, CreatedAt: "2023-04-18",
	},
}

var demoCommissions = []Commission{
	{
		ID: "1", ProviderID: "1", ProviderName: "Dr. Sarah Johnson",
		Amount: 12500, Percentage: 10, Status: "paid", Period: "2024-01",
		CreatedAt: "2024-02-01", PaidAt: "2024-02-05",
	},
	{
		ID: "2", ProviderID: "2", ProviderName: "Dr. Michael Chen",
		Amount: 8750, Percentage: 10, Status: "pending", Period: "2024-01",
		CreatedAt: "2024-02-01",
	},
}

var demoPayments = []Payment{
	{
		ID: "1", PatientID: "1", PatientName: "John Smith",
		ProviderID: "1", ProviderName: "Dr. Sarah Johnson",
		Amount: 250, Status: "completed", Method: "card",
		TransactionID: "txn_8f3a21", CreatedAt: "2024-01-15", ProcessedAt: "2024-01-15",
	},
	{
		ID: "2", PatientID: "2", PatientName: "Maria Garcia",
		ProviderID: "2", ProviderName: "Dr. Michael Chen",
		Amount: 180, Status: "pending", Method: "bank_transfer",
		TransactionID: "txn_9c44b0", CreatedAt: "2024-02-03",
	},
}

var demoServices = []MarketService{
	{
		ID: "1", Name: "Cardiac Consultation", Description: "Initial cardiology assessment",
		Category: "Consultation", Price: 250, Duration: 45,
		ProviderID: "1", ProviderName: "Dr. Sarah Johnson",
		Status: "active", Rating: 4.8, TotalBookings: 134, CreatedAt: "2023-02-01",
	},
	{
		ID: "2", Name: "Skin Screening", Description: "Full-body dermatological screening",
		Category: "Screening", Price: 180, Duration: 30,
		ProviderID: "2", ProviderName: "Dr. Michael Chen",
		Status: "active", Rating: 4.5, TotalBookings: 87, CreatedAt: "2023-04-12",
	},
}

var demoReviews = []Review{
	{
		ID: "1", PatientID: "1", PatientName: "John Smith",
		ProviderID: "1", ProviderName: "Dr. Sarah Johnson",
		ServiceID: "1", ServiceName: "Cardiac Consultation",
		Rating: 5, Comment: "Thorough and reassuring.", Status: "approved",
		CreatedAt: "2024-01-16", UpdatedAt: "2024-01-16",
	},
}

var demoCommunications = []Communication{
	{
		ID: "1", Type: "email", Recipient: "john.smith@email.com",
		Subject: "Appointment reminder", Message: "Your appointment is tomorrow at 10:00.",
		Status: "delivered", SentAt: "2024-01-14T08:00:00Z", CreatedAt: "2024-01-14",
	},
}

var demoNotifications = []Notification{
	{
		ID: "1", Type: "system", Title: "Maintenance window",
		Message: "The portal will be unavailable Sunday 02:00-03:00 UTC.",
		Priority: "medium", Status: "unread", RecipientID: "1", CreatedAt: "2024-02-08",
	},
}
