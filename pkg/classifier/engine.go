package classifier

// Predicate решает, участвует ли имя файла в классификации.
type Predicate func(name string) bool

// AcceptAll пропускает любое имя.
func AcceptAll(string) bool { return true }

// Stats - итог одного прохода классификатора.
type Stats struct {
	Seen     int // Всего кандидатов на входе
	Eligible int // Прошли Predicate и попали в секцию
	Skipped  int // Отброшены Predicate
}

// Engine выполняет классификацию
type Engine struct {
	eligible Predicate
}

// New создаёт Engine. nil predicate эквивалентен AcceptAll.
func New(eligible Predicate) *Engine {
	if eligible == nil {
		eligible = AcceptAll
	}
	return &Engine{eligible: eligible}
}

// Process раскладывает кандидатов по секциям реестра.
//
// Для каждого кандидата (в порядке входа) выигрывает первая секция, в чьём
// Known он объявлен; иначе кандидат уходит в секцию по умолчанию.
// Реестр не очищается: вызывающий передаёт Clone() или делает Reset().
func (e *Engine) Process(reg *Registry, candidates []string) Stats {
	stats := Stats{Seen: len(candidates)}

	for _, name := range candidates {
		if !e.eligible(name) {
			stats.Skipped++
			continue
		}
		stats.Eligible++

		target := reg.Default()
		for _, b := range reg.buckets {
			if b.IsKnown(name) {
				target = b
				break
			}
		}
		target.add(name)
	}

	return stats
}

// Classify - короткая форма New(eligible).Process(reg, candidates).
func Classify(reg *Registry, candidates []string, eligible Predicate) Stats {
	return New(eligible).Process(reg, candidates)
}
