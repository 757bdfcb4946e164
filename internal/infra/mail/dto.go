package mail

type resultEmailData struct {
	Name        string
	Total       int
	Max         int
	BucketLabel string
}

type adminEmailData struct {
	Name        string
	Email       string
	Phone       string
	Total       int
	Max         int
	BucketLabel string
	LeadID      string
	ResponseID  string
	Answers     string
}

type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendEmailResponse struct {
	ID string `json:"id"`
}
