package config

// TaskType определяет способ ответа на вопрос
type TaskType string

const (
	TaskTypeText  TaskType = "text"
	TaskTypeExcel TaskType = "excel"
)

// Valid сообщает, поддерживается ли тип задания
func (t TaskType) Valid() bool {
	return t == TaskTypeText || t == TaskTypeExcel
}

// Task представляет один вопрос интервью
type Task struct {
	Question       string   `yaml:"question" json:"question"`
	Type           TaskType `yaml:"type" json:"type"`
	ExpectedAnswer string   `yaml:"expected_answer,omitempty" json:"expected_answer,omitempty"`
	ExpectedColumn string   `yaml:"expected_column,omitempty" json:"expected_column,omitempty"`
}

// Catalog представляет упорядоченный список заданий, загруженный при старте
type Catalog struct {
	Tasks []Task `yaml:"tasks"`
}

// Методы для удобного доступа к каталогу
func (c *Catalog) GetTotalTasks() int {
	return len(c.Tasks)
}

// ValidTasks возвращает задания с поддерживаемым типом в исходном порядке
func (c *Catalog) ValidTasks() []Task {
	tasks := make([]Task, 0, len(c.Tasks))
	for _, task := range c.Tasks {
		if task.Type.Valid() {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// InvalidTasks возвращает задания с неизвестным типом
func (c *Catalog) InvalidTasks() []Task {
	var tasks []Task
	for _, task := range c.Tasks {
		if !task.Type.Valid() {
			tasks = append(tasks, task)
		}
	}
	return tasks
}
