package approvals

// SampleEmployees is the default employee set.
var SampleEmployees = []Employee{
	{ID: "123", FirstName: "James", LastName: "Smith"},
	{ID: "456", FirstName: "Mary", LastName: "Johnson"},
	{ID: "789", FirstName: "Robert", LastName: "Williams"},
	{ID: "999", FirstName: "Patricia", LastName: "Brown"},
}

// SampleTransactions returns a fresh copy of the default transaction set.
func SampleTransactions() []Transaction {
	e := SampleEmployees
	return []Transaction{
		{ID: "t01", Amount: 431.21, Employee: e[0], Merchant: "Social Media Ads Inc", Date: "2026-01-03", Approved: true},
		{ID: "t02", Amount: 982.17, Employee: e[1], Merchant: "Cloud Hosting Co", Date: "2026-01-04"},
		{ID: "t03", Amount: 84.00, Employee: e[3], Merchant: "Corner Cafe", Date: "2026-01-05", Approved: true},
		{ID: "t04", Amount: 1250.55, Employee: e[2], Merchant: "Airline Partners", Date: "2026-01-07"},
		{ID: "t05", Amount: 19.99, Employee: e[0], Merchant: "Music Streaming", Date: "2026-01-08"},
		{ID: "t06", Amount: 312.40, Employee: e[3], Merchant: "Office Supply Depot", Date: "2026-01-10"},
		{ID: "t07", Amount: 77.80, Employee: e[1], Merchant: "Rideshare", Date: "2026-01-11", Approved: true},
		{ID: "t08", Amount: 540.00, Employee: e[0], Merchant: "Conference Tickets", Date: "2026-01-13"},
		{ID: "t09", Amount: 65.25, Employee: e[2], Merchant: "Hotel Minibar", Date: "2026-01-14"},
		{ID: "t10", Amount: 2300.00, Employee: e[3], Merchant: "Laptop Store", Date: "2026-01-16", Approved: true},
		{ID: "t11", Amount: 12.50, Employee: e[1], Merchant: "Parking Garage", Date: "2026-01-17"},
		{ID: "t12", Amount: 158.90, Employee: e[0], Merchant: "Team Lunch", Date: "2026-01-19"},
	}
}
