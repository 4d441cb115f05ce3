package entities

import (
	"careport/internal/api"
)

// Registry bundles the typed collection services behind one constructor.
type Registry struct {
	Providers      *Service[Provider]
	Patients       *Service[Patient]
	Administrators *Service[Administrator]
	Commissions    *Service[Commission]
	Payments       *Service[Payment]
	Services       *Service[MarketService]
	Reviews        *Service[Review]
	Communications *Service[Communication]
	Notifications  *Service[Notification]
}

// NewRegistry wires every collection against the given client. demo enables
// the in-memory fallback datasets.
func NewRegistry(client *api.Client, demo bool) *Registry {
	return &Registry{
		Providers: NewService(Config[Provider]{
			Client: client, Resource: "/providers", Demo: demo, Seed: demoProviders,
			WithID: func(p Provider, id string) Provider { p.ID = id; return p },
		}),
		Patients: NewService(Config[Patient]{
			Client: client, Resource: "/patients", Demo: demo, Seed: demoPatients,
			WithID: func(p Patient, id string) Patient { p.ID = id; return p },
		}),
		Administrators: NewService(Config[Administrator]{
			Client: client, Resource: "/administrators", Demo: demo, Seed: demoAdministrators,
			WithID: func(a Administrator, id string) Administrator { a.ID = id; return a },
		}),
		Commissions: NewService(Config[Commission]{
			Client: client, Resource: "/commissions", Demo: demo, Seed: demoCommissions,
			WithID: func(c Commission, id string) Commission { c.ID = id; return c },
		}),
		Payments: NewService(Config[Payment]{
			Client: client, Resource: "/payments", Demo: demo, Seed: demoPayments,
			WithID: func(p Payment, id string) Payment { p.ID = id; return p },
		}),
		Services: NewService(Config[MarketService]{
			Client: client, Resource: "/services", Demo: demo, Seed: demoServices,
			WithID: func(s MarketService, id string) MarketService { s.ID = id; return s },
		}),
		Reviews: NewService(Config[Review]{
			Client: client, Resource: "/reviews", Demo: demo, Seed: demoReviews,
			WithID: func(r Review, id string) Review { r.ID = id; return r },
		}),
		Communications: NewService(Config[Communication]{
			Client: client, Resource: "/communications", Demo: demo, Seed: demoCommunications,
			WithID: func(c Communication, id string) Communication { c.ID = id; return c },
		}),
		Notifications: NewService(Config[Notification]{
			Client: client, Resource: "/notifications", Demo: demo, Seed: demoNotifications,
			WithID: func(n Notification, id string) Notification { n.ID = id; return n },
		}),
	}
}
