package domain

// SubmissionPhase представляет фазу заявки
type SubmissionPhase string

// Фазы заявки: сначала идея, затем прототип для команд из шортлиста
const (
	PhaseIdea      SubmissionPhase = "idea"
	PhasePrototype SubmissionPhase = "prototype"
)

// IdeaPayload содержит поля заявки фазы идеи.
// Поля накапливаются автосохранением по принципу "последняя запись
// побеждает"; после отправки payload заморожен на уровне приложения.
type IdeaPayload struct {
	ProblemStatement string   `json:"problem_statement"`
	Evidence         string   `json:"evidence"`
	SolutionOverview string   `json:"solution_overview"`
	Domain           string   `json:"domain"`
	TargetAudience   string   `json:"target_audience"`
	ImpactStatement  string   `json:"impact_statement"`
	AttachmentRefs   []string `json:"attachment_refs"`
}

// PrototypePayload содержит поля заявки фазы прототипа
type PrototypePayload struct {
	DeckLink      string `json:"deck_link"`
	RepoLink      string `json:"repo_link"`
	DesignLink    string `json:"design_link"`
	CostModel     string `json:"cost_model"`
	ExecutionPlan string `json:"execution_plan"`
}

// Submission представляет заявку команды для чтения презентационным слоем.
// Уже отправленная команда загружается сразу в состоянии submitted,
// минуя цикл черновика.
type Submission struct {
	TeamID          string            `json:"team_id"`
	Status          SubmissionStatus  `json:"status"`
	Idea            IdeaPayload       `json:"idea"`
	Prototype       *PrototypePayload `json:"prototype,omitempty"`
	PrototypeStatus SubmissionStatus  `json:"prototype_status"`
	Shortlisted     bool              `json:"shortlisted"`
}
