package provisioning

// Status is shared by queue items and their steps.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusSuccess    Status = "Success"
	StatusError      Status = "Error"
)

// Step names double as display labels and as the retry lookup key.
const (
	StepCreateZone       = "Creating domain zone..."
	StepSetNameservers   = "Setting registrar nameservers..."
	StepCreateCNAME      = "Creating CNAME record (www)..."
	StepCreateRootRecord = "Creating root A record..."

	StepSSLMode          = "Setting SSL mode..."
	StepAlwaysUseHTTPS   = "Enabling Always Use HTTPS..."
	StepHSTS             = "Enabling HSTS..."
	StepDisableTLS13     = "Disabling TLS 1.3..."
	StepOriginPulls      = "Enabling Authenticated Origin Pulls..."
	StepBotFightMode     = "Enabling Bot Fight Mode..."
	StepWAFRule          = "Creating WAF custom rule..."
	StepEarlyHints       = "Enabling Early Hints..."
	StepZeroRTT          = "Enabling 0-RTT..."
	StepPseudoIPv4       = "Enabling Pseudo IPv4..."
	StepEmailObfuscation = "Disabling Email Obfuscation..."
)

// Step is one unit of work inside a domain's provisioning sequence.
type Step struct {
	Name     string `json:"name"`
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
	Variable string `json:"variable,omitempty"`
}

// QueueItem is one domain's provisioning record. Domain is the dedup key.
type QueueItem struct {
	Domain             string   `json:"domain"`
	Status             Status   `json:"status"`
	Steps              []Step   `json:"steps"`
	Error              string   `json:"error,omitempty"`
	Nameservers        []string `json:"nameservers,omitempty"`
	ZoneID             string   `json:"zone_id,omitempty"`
	RootIP             string   `json:"root_ip,omitempty"`
	Proxied            bool     `json:"proxied"`
	AccountID          uint     `json:"account_id,omitempty"`
	RegistrarAccountID uint     `json:"registrar_account_id,omitempty"`
	BatchID            string   `json:"batch_id,omitempty"`
}

// SetStep updates the step with the given name in place, or appends it if it
// does not exist yet. Steps keep their original position, so progress events
// arriving more than once for the same name never grow the list.
func (q *QueueItem) SetStep(name string, status Status, errMsg, variable string) {
	for i := range q.Steps {
		if q.Steps[i].Name == name {
			q.Steps[i].Status = status
			q.Steps[i].Error = errMsg
			if variable != "" {
				q.Steps[i].Variable = variable
			}
			return
		}
	}
	q.Steps = append(q.Steps, Step{Name: name, Status: status, Error: errMsg, Variable: variable})
}

// FindStep returns a copy of the named step.
func (q *QueueItem) FindStep(name string) (Step, bool) {
	for i := range q.Steps {
		if q.Steps[i].Name == name {
			return q.Steps[i], true
		}
	}
	return Step{}, false
}

func (q *QueueItem) clone() QueueItem {
	out := *q
	out.Steps = append([]Step(nil), q.Steps...)
	out.Nameservers = append([]string(nil), q.Nameservers...)
	return out
}
