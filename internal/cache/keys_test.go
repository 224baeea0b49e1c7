package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "session",
			objectType:  "state",
			identifier:  "01HZX3Q4W5E6R7T8Y9U0I1O2P3",
			paramsKey:   nil,
			expectedKey: "interviewassistant:session:state:01HZX3Q4W5E6R7T8Y9U0I1O2P3",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "session",
			objectType:  "state",
			identifier:  "abc",
			paramsKey:   []string{},
			expectedKey: "interviewassistant:session:state:abc",
		},
		{
			name:        "with one paramsKey",
			serviceName: "export",
			objectType:  "report",
			identifier:  "abc",
			paramsKey:   []string{"html"},
			expectedKey: "interviewassistant:export:report:abc:html",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "export",
			objectType:  "report",
			identifier:  "xyz",
			paramsKey:   []string{"pdf", "a4", "v2"},
			expectedKey: "interviewassistant:export:report:xyz:pdf_a4_v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestSessionStateKey(t *testing.T) {
	if got := SessionStateKey("s1"); got != "interviewassistant:session:state:s1" {
		t.Errorf("SessionStateKey() = %v", got)
	}
}
