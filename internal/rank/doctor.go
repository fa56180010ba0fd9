package rank

import (
	"regexp"
	"strings"

	"medvagas-engine/internal/ptext"
)

// Term lists of the strict classifier. The policy is fixed: tuning it means
// regenerating every snapshot, so the lists are code, not config.
var (
	doctorTerms = []string{
		"medico", "medica", "medicos", "medicas",
		"plantonista", "clinico geral", "clinico", "generalista",
		"pediatra", "psiquiatra", "anestesiologista", "ginecologista", "obstetra",
		"ortopedista", "cardiologista", "urologista", "dermatologista", "infectologista",
		"intensivista", "urgencista", "emergencista",
		"medicina do trabalho", "saude da familia", "psf", "esf",
	}

	hiringTerms = []string{
		"contratacao", "contratar", "contratacao de", "contratacao temporaria",
		"prestacao de servico", "prestacao de servicos", "servico medico", "servicos medicos",
		"mao de obra", "fornecimento de mao de obra", "terceirizacao", "cooperativa medica",
		"credenciamento", "chamamento publico", "processo seletivo", "selecao", "selecionamento",
		"vaga", "vagas", "plantao", "plantoes", "escala de plantao", "carga horaria",
	}

	// goods/diagnostics vocabulary: the record is about buying things, not
	// hiring people
	excludeTerms = []string{
		"medicamento", "medicamentos", "remedio", "farmacia", "farmaceutico",
		"material medico", "materiais medicos", "material hospitalar", "insumo", "insumos",
		"equipamento", "equipamentos", "aparelho", "aparelhos", "pecas", "suprimentos",
		"kit", "luva", "seringa", "agulha", "cateter", "curativo", "gaze", "soro", "ampola",
		"epi", "mascara", "respirador", "oxigenio",
		"reagente", "laboratorio", "exame", "exames", "tomografia", "ultrassom", "raio x", "radiologia",
	}

	specialtyTerms = []string{
		"pediatra", "psiquiatra", "anestesiologista", "ginecologista", "obstetra",
		"ortopedista", "cardiologista", "urologista", "dermatologista", "infectologista",
		"intensivista", "urgencista", "emergencista",
	}

	reDoctorWord    = regexp.MustCompile(`\bmedic[oa]s?\b`)
	reAccreditation = regexp.MustCompile(`\bcredenciament\w*\b`)
	rePublicCall    = regexp.MustCompile(`\bchamament\w*\b`)
	reHiringPrefix  = regexp.MustCompile(`\bcontrat\w*\b`)
)

// DoctorScorer is the strict physician-hiring classifier. The verdict is a
// heuristic over noisy free text; the contract is that the rule set is
// reproduced exactly, not that it matches ground truth.
type DoctorScorer struct{}

func (DoctorScorer) Score(text string) (bool, int) {
	t := ptext.Normalize(text)
	if t == "" {
		return false, 0
	}

	hasDoctor := reDoctorWord.MatchString(t) || containsAny(t, doctorTerms)
	hasHiring := containsAny(t, hiringTerms) ||
		reAccreditation.MatchString(t) || rePublicCall.MatchString(t) || reHiringPrefix.MatchString(t)
	hasExclude := containsAny(t, excludeTerms)

	score := 0
	if hasDoctor {
		score += 3
	}
	if hasHiring {
		score += 3
	}

	if strings.Contains(t, "prestacao de servico") {
		score += 2
	}
	if strings.Contains(t, "servicos medicos") || strings.Contains(t, "servico medico") {
		score += 2
	}
	if strings.Contains(t, "credenciamento") {
		score += 2
	}
	if strings.Contains(t, "chamamento publico") {
		score += 2
	}
	if strings.Contains(t, "plantao") || strings.Contains(t, "plantoes") || strings.Contains(t, "plantonista") {
		score += 2
	}
	if strings.Contains(t, "vaga") {
		score += 1
	}

	for _, sp := range specialtyTerms {
		if strings.Contains(t, sp) {
			score++
		}
	}

	if hasExclude {
		score -= 6
	}
	if strings.Contains(t, "aquisicao") && !strings.Contains(t, "servic") {
		score -= 4
	}
	if strings.Contains(t, "fornecimento") && !strings.Contains(t, "mao de obra") && !strings.Contains(t, "servic") {
		score -= 2
	}

	return hasDoctor && hasHiring && score >= 3, score
}

func containsAny(t string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(t, term) {
			return true
		}
	}
	return false
}
