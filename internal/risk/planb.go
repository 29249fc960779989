package risk

import "paradecast/internal/models"

// maxAlternatives caps the Plan B list regardless of source.
const maxAlternatives = 3

// CatalogProvenance labels alternatives drawn from the local catalog rather
// than the AI collaborator.
const (
	CatalogProvenance = "catalog"
	GeneralProvenance = "general"
)

type catalogKey struct {
	activity  models.Activity
	condition models.Condition
}

// alternativesCatalog maps (activity, triggering condition) to curated
// substitutions. Entries lean indoor or weather-proof by construction.
var alternativesCatalog = map[catalogKey][]models.Alternative{
	{models.ActivitySurf, models.ConditionCold}: {
		{Title: "Heated indoor pool session", Description: "Swap the lineup for lap swimming or a wave pool.", Kind: "indoor", Reasoning: "Keeps you in the water without the cold-shock risk.", Tips: "Bring goggles; many pools rent boards for wave sessions.", DurationLabel: "1-2 hours", CostTier: "Low"},
		{Title: "Surf film and board maintenance day", Description: "Re-wax and inspect your board while watching surf documentaries.", Kind: "indoor", Reasoning: "Productive surf time that ignores the weather entirely.", CostTier: "Free"},
	},
	{models.ActivitySurf, models.ConditionWindy}: {
		{Title: "Sheltered cove bodysurfing", Description: "Find a protected break on the lee side of the coast.", Kind: "outdoor", Reasoning: "Onshore wind blows out open beaches but spares sheltered coves.", Tips: "Check a wind map for lee shores before driving.", DurationLabel: "2-3 hours", CostTier: "Free"},
	},
	{models.ActivityBeach, models.ConditionWet}: {
		{Title: "Aquarium visit", Description: "Stay on an ocean theme behind glass.", Kind: "indoor", Reasoning: "All the marine atmosphere with none of the rain.", DurationLabel: "2-3 hours", CostTier: "Medium"},
		{Title: "Indoor market food crawl", Description: "Graze through a covered market's food stalls.", Kind: "indoor", Reasoning: "A social, unhurried day out that rain cannot touch.", CostTier: "Medium"},
	},
	{models.ActivityBeach, models.ConditionCold}: {
		{Title: "Thermal baths afternoon", Description: "Trade the beach towel for hot springs or a sauna circuit.", Kind: "mixed", Reasoning: "Warm water relaxation works better the colder it gets.", Tips: "Book a slot in advance on cold weekends.", DurationLabel: "Half day", CostTier: "Medium"},
	},
	{models.ActivityBeach, models.ConditionWindy}: {
		{Title: "Coastal boardwalk cafe hop", Description: "Watch the whitecaps from behind a window with coffee in hand.", Kind: "mixed", Reasoning: "You keep the sea view while the wind stays outside.", CostTier: "Low"},
	},
	{models.ActivityBeach, models.ConditionUncomfortable}: {
		{Title: "Air-conditioned gallery circuit", Description: "Spend the muggy hours in climate-controlled museums.", Kind: "indoor", Reasoning: "Humidity-proof culture beats a sticky beach day.", DurationLabel: "2-4 hours", CostTier: "Low"},
	},
	{models.ActivityRun, models.ConditionHot}: {
		{Title: "Dawn run", Description: "Shift the same route to first light before the heat builds.", Kind: "outdoor", Reasoning: "Early starts dodge peak temperatures without losing the workout.", Tips: "Carry water anyway; heat lingers overnight in hot spells.", DurationLabel: "1 hour", CostTier: "Free"},
		{Title: "Indoor track or treadmill intervals", Description: "Move the session onto a climate-controlled track.", Kind: "indoor", Reasoning: "Quality training with zero heat-stress risk.", CostTier: "Low"},
	},
	{models.ActivityRun, models.ConditionWet}: {
		{Title: "Covered stadium stairs workout", Description: "Stair repeats under a grandstand roof.", Kind: "mixed", Reasoning: "Hard cardio that shrugs off the rain.", DurationLabel: "45 minutes", CostTier: "Free"},
	},
	{models.ActivityRun, models.ConditionUncomfortable}: {
		{Title: "Pool running session", Description: "Aqua jogging keeps the aerobic load without the sweat misery.", Kind: "indoor", Reasoning: "Humid air makes road running risky; water absorbs the heat.", CostTier: "Low"},
	},
	{models.ActivityHike, models.ConditionWet}: {
		{Title: "Museum and covered arcade walk", Description: "Put the kilometres into an urban indoor circuit.", Kind: "indoor", Reasoning: "You still walk all day, just under roofs.", DurationLabel: "3-4 hours", CostTier: "Low"},
		{Title: "Climbing gym intro session", Description: "Trade the trail for an afternoon on indoor walls.", Kind: "indoor", Reasoning: "Similar full-body effort, fully weather-proof.", Tips: "First-timer passes usually include gear rental.", CostTier: "Medium"},
	},
	{models.ActivityHike, models.ConditionHot}: {
		{Title: "Forest gorge walk", Description: "Pick a shaded riverside trail instead of open ridgeline.", Kind: "outdoor", Reasoning: "Canopy and running water can sit several degrees cooler.", Tips: "Start early and turn around by midday.", DurationLabel: "Half day", CostTier: "Free"},
	},
	{models.ActivityHike, models.ConditionWindy}: {
		{Title: "Valley-floor loop trail", Description: "Stay low where terrain breaks the wind.", Kind: "outdoor", Reasoning: "Exposed summits are the hazard; sheltered valleys stay pleasant.", CostTier: "Free"},
	},
	{models.ActivitySailing, models.ConditionWet}: {
		{Title: "Maritime museum visit", Description: "Spend the day around boats without being on one.", Kind: "indoor", Reasoning: "Rain squalls make for poor visibility and a miserable crew.", DurationLabel: "2-3 hours", CostTier: "Low"},
	},
	{models.ActivitySailing, models.ConditionCold}: {
		{Title: "Navigation theory workshop", Description: "Chart work and passage planning in a warm clubroom.", Kind: "indoor", Reasoning: "Cold fronts are the right time to sharpen shore skills.", CostTier: "Low"},
	},
	{models.ActivityPicnic, models.ConditionWet}: {
		{Title: "Conservatory or glasshouse lunch", Description: "Botanical garden glasshouses keep the greenery and lose the rain.", Kind: "indoor", Reasoning: "Same unhurried outdoor feel under glass.", DurationLabel: "2 hours", CostTier: "Low"},
		{Title: "Long-table lunch at a covered market", Description: "Assemble the picnic from stalls and eat it on the spot.", Kind: "indoor", Reasoning: "The grazing is the point; the blanket is optional.", CostTier: "Medium"},
	},
	{models.ActivityPicnic, models.ConditionWindy}: {
		{Title: "Walled-garden picnic", Description: "Historic walled gardens and courtyards block the gusts.", Kind: "outdoor", Reasoning: "Wind ruins open parkland but spares enclosed green spaces.", CostTier: "Free"},
	},
	{models.ActivityPicnic, models.ConditionHot}: {
		{Title: "Twilight picnic", Description: "Move the same spread to the evening cool.", Kind: "outdoor", Reasoning: "The heat peaks mid-afternoon; sunset keeps the occasion.", Tips: "Bring a cooler; food safety degrades fast in heat.", DurationLabel: "2-3 hours", CostTier: "Free"},
	},
	{models.ActivityPicnic, models.ConditionUncomfortable}: {
		{Title: "Riverside shade brunch", Description: "Water and deep shade take the edge off muggy air.", Kind: "outdoor", Reasoning: "Shifting time and place beats cancelling outright.", CostTier: "Free"},
	},
}

// generalAlternatives is the activity-agnostic fallback when the catalog has
// no coverage for any requested condition.
var generalAlternatives = []models.Alternative{
	{Title: "Local museum or gallery day", Description: "Pick two exhibitions and take them slowly.", Kind: "indoor", Reasoning: "Reliable in any weather and easy to scale to the group.", DurationLabel: "2-4 hours", CostTier: "Low"},
	{Title: "Cooking a long lunch at home", Description: "Turn the gathering inward around a multi-course meal.", Kind: "indoor", Reasoning: "Keeps the social core of the original plan intact.", CostTier: "Low"},
	{Title: "Cinema double feature", Description: "Back-to-back sessions with an intermission meal.", Kind: "indoor", Reasoning: "A full-day plan that no forecast can spoil.", DurationLabel: "4-5 hours", CostTier: "Medium"},
}

// ResolveAlternatives supplies the Plan B list for an unfavorable verdict.
// An external collaborator result passes through unchanged (truncated);
// otherwise the catalog is consulted for every requested condition with
// coverage, degrading to the general list. Never fails.
func ResolveAlternatives(activity models.Activity, conditions []models.Condition, external *models.PlanB) models.PlanB {
	if external != nil && len(external.Alternatives) > 0 {
		return models.PlanB{
			Provenance:   external.Provenance,
			Alternatives: dedupeTruncate(external.Alternatives),
		}
	}

	var pooled []models.Alternative
	for _, c := range conditions {
		pooled = append(pooled, alternativesCatalog[catalogKey{activity, c}]...)
	}
	if len(pooled) == 0 {
		return models.PlanB{
			Provenance:   GeneralProvenance,
			Alternatives: dedupeTruncate(generalAlternatives),
		}
	}
	return models.PlanB{
		Provenance:   CatalogProvenance,
		Alternatives: dedupeTruncate(pooled),
	}
}

// dedupeTruncate drops duplicate titles (first occurrence wins) and caps the
// list at maxAlternatives.
func dedupeTruncate(alts []models.Alternative) []models.Alternative {
	seen := make(map[string]bool, len(alts))
	out := make([]models.Alternative, 0, maxAlternatives)
	for _, a := range alts {
		if seen[a.Title] {
			continue
		}
		seen[a.Title] = true
		out = append(out, a)
		if len(out) == maxAlternatives {
			break
		}
	}
	return out
}
