package policy

var priorityLabels = map[int]string{
	1: "Highest",
	2: "High",
	3: "Medium",
	4: "Low",
	5: "Lowest",
}

// PriorityLabel names a priority, or "Unknown" outside 1..5
func PriorityLabel(p int) string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return "Unknown"
}
