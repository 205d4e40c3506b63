package helm

import (
	"fmt"

	helmv4strvals "helm.sh/helm/v4/pkg/strvals"
	"sigs.k8s.io/yaml"
)

func mergeValues(spec *ChartSpec) (map[string]any, error) {
	base := map[string]any{}

	err := mergeValuesYaml(spec.ValuesYaml, base)
	if err != nil {
		return nil, err
	}

	err = mergeSetValues(spec.SetValues, base)
	if err != nil {
		return nil, err
	}

	err = mergeSetJSONValues(spec.SetJSONVals, base)
	if err != nil {
		return nil, err
	}

	return base, nil
}

func mergeValuesYaml(valuesYaml string, base map[string]any) error {
	if valuesYaml == "" {
		return nil
	}

	var parsedMap map[string]any

	err := yaml.Unmarshal([]byte(valuesYaml), &parsedMap)
	if err != nil {
		return fmt.Errorf("failed to parse ValuesYaml: %w", err)
	}

	mergeMapsInto(base, parsedMap)

	return nil
}

func mergeSetValues(setValues map[string]string, base map[string]any) error {
	for key, val := range setValues {
		err := helmv4strvals.ParseInto(fmt.Sprintf("%s=%s", key, val), base)
		if err != nil {
			return fmt.Errorf("failed to parse set value %s=%s: %w", key, val, err)
		}
	}

	return nil
}

func mergeSetJSONValues(setJSONVals map[string]string, base map[string]any) error {
	for key, val := range setJSONVals {
		err := helmv4strvals.ParseJSON(fmt.Sprintf("%s=%s", key, val), base)
		if err != nil {
			return fmt.Errorf("failed to parse JSON value %s=%s: %w", key, val, err)
		}
	}

	return nil
}

func mergeMapsInto(dest, src map[string]any) {
	for key, srcVal := range src {
		if srcMap, ok := srcVal.(map[string]any); ok {
			if destVal, exists := dest[key]; exists {
				if destMap, ok := destVal.(map[string]any); ok {
					mergeMapsInto(destMap, srcMap)

					continue
				}
			}
		}

		dest[key] = srcVal
	}
}
