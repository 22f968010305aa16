package models

// EmailRequest is the payload accepted by the report-email function.
type EmailRequest struct {
	RecipientEmail string      `json:"recipientEmail"`
	ReportDate     string      `json:"reportDate"`
	Report         DailyRecord `json:"report"`
}

// EmailData is the prepared email returned by the report-email function.
// The function stops at preparing the message; handing it to a delivery
// provider is left to the caller.
type EmailData struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// EmailResponse is the report-email function's success envelope.
type EmailResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	EmailData EmailData `json:"emailData"`
}
