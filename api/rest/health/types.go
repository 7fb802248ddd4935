package health

const Version = "0.3.0"

type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
	Streams int    `json:"streams"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type ConnectionCounter interface {
	TotalConnections() int
}
