package mail

// StepEmailData é a visão estruturada do lead entregue aos templates —
// um documento HTML canônico por passo, nada de concatenação de string.
type StepEmailData struct {
	FirstName string
	FullName  string
	Company   string

	TotalScore     int
	Percentage     int
	ReadinessLevel string

	DataScore      int
	ProcessScore   int
	TeamScore      int
	StrategicScore int
	ChangeScore    int

	UnsubscribeURL string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string

	// From no formato "Nome <email>"
	From string

	// BaseURL pública para montar o link de unsubscribe do rodapé
	BaseURL string

	TemplatesDir string
}
