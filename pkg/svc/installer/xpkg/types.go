package xpkginstaller

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	packageGroup   = "pkg.crossplane.io"
	packageVersion = "v1"

	// ProviderKind and FunctionKind name the two installable package kinds.
	ProviderKind = "Provider"
	// FunctionKind is the kind of a composition function package.
	FunctionKind = "Function"

	// HealthyConditionType is the condition type the package manager sets once
	// a package revision is installed and its runtime is up.
	HealthyConditionType = "Healthy"
)

//nolint:gochecknoglobals // package-level constant for API version
var packageGroupVersion = schema.GroupVersion{
	Group:   packageGroup,
	Version: packageVersion,
}

// PackageSpec selects the OCI package a Provider or Function runs.
type PackageSpec struct {
	Package string `json:"package"`
}

// PackageStatus carries the conditions the package manager reports.
type PackageStatus struct {
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// GetCondition returns the condition of the given type, or nil when the
// package manager has not reported it yet.
func (in *PackageStatus) GetCondition(conditionType string) *metav1.Condition {
	for i := range in.Conditions {
		if in.Conditions[i].Type == conditionType {
			return &in.Conditions[i]
		}
	}

	return nil
}

// DeepCopyInto copies all properties into another PackageStatus.
func (in *PackageStatus) DeepCopyInto(out *PackageStatus) {
	*out = *in
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
}

// Provider mirrors the Crossplane Provider CRD with the minimal fields the
// bootstrap needs to install a package and read its health. Keeping a local
// definition avoids pulling the Crossplane runtime module into go.mod.
type Provider struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata"`

	Spec   PackageSpec   `json:"spec"`
	Status PackageStatus `json:"status"`
}

// DeepCopyInto copies all properties of this object into another object of the same type.
func (in *Provider) DeepCopyInto(out *Provider) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy creates a deep copy of Provider.
func (in *Provider) DeepCopy() *Provider {
	if in == nil {
		return nil
	}

	out := new(Provider)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyObject implements runtime.Object interface.
func (in *Provider) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}

	return nil
}

// ProviderList registers the list kind with the scheme for completeness.
type ProviderList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata"`

	Items []Provider `json:"items"`
}

// DeepCopyInto copies all properties into another ProviderList.
func (in *ProviderList) DeepCopyInto(out *ProviderList) {
	*out = *in
	out.TypeMeta = in.TypeMeta

	in.ListMeta.DeepCopyInto(&out.ListMeta)

	if in.Items != nil {
		out.Items = make([]Provider, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy creates a deep copy of ProviderList.
func (in *ProviderList) DeepCopy() *ProviderList {
	if in == nil {
		return nil
	}

	out := new(ProviderList)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyObject implements runtime.Object interface.
func (in *ProviderList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}

	return nil
}

// Function mirrors the Crossplane Function CRD with the same minimal shape
// as Provider.
type Function struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata"`

	Spec   PackageSpec   `json:"spec"`
	Status PackageStatus `json:"status"`
}

// DeepCopyInto copies all properties of this object into another object of the same type.
func (in *Function) DeepCopyInto(out *Function) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy creates a deep copy of Function.
func (in *Function) DeepCopy() *Function {
	if in == nil {
		return nil
	}

	out := new(Function)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyObject implements runtime.Object interface.
func (in *Function) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}

	return nil
}

// FunctionList registers the list kind with the scheme for completeness.
type FunctionList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata"`

	Items []Function `json:"items"`
}

// DeepCopyInto copies all properties into another FunctionList.
func (in *FunctionList) DeepCopyInto(out *FunctionList) {
	*out = *in
	out.TypeMeta = in.TypeMeta

	in.ListMeta.DeepCopyInto(&out.ListMeta)

	if in.Items != nil {
		out.Items = make([]Function, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy creates a deep copy of FunctionList.
func (in *FunctionList) DeepCopy() *FunctionList {
	if in == nil {
		return nil
	}

	out := new(FunctionList)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyObject implements runtime.Object interface.
func (in *FunctionList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}

	return nil
}

// FunctionRevisionSpec carries the revision coordinates the package manager
// records. Teardown only reads metadata, so only these fields are declared.
type FunctionRevisionSpec struct {
	Image    string `json:"image,omitempty"`
	Revision int64  `json:"revision,omitempty"`
}

// FunctionRevision mirrors the controller-owned revision objects that carry
// finalizers blocking teardown.
type FunctionRevision struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata"`

	Spec   FunctionRevisionSpec `json:"spec"`
	Status PackageStatus        `json:"status"`
}

// DeepCopyInto copies all properties of this object into another object of the same type.
func (in *FunctionRevision) DeepCopyInto(out *FunctionRevision) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy creates a deep copy of FunctionRevision.
func (in *FunctionRevision) DeepCopy() *FunctionRevision {
	if in == nil {
		return nil
	}

	out := new(FunctionRevision)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyObject implements runtime.Object interface.
func (in *FunctionRevision) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}

	return nil
}

// FunctionRevisionList is the list kind teardown enumerates.
type FunctionRevisionList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata"`

	Items []FunctionRevision `json:"items"`
}

// DeepCopyInto copies all properties into another FunctionRevisionList.
func (in *FunctionRevisionList) DeepCopyInto(out *FunctionRevisionList) {
	*out = *in
	out.TypeMeta = in.TypeMeta

	in.ListMeta.DeepCopyInto(&out.ListMeta)

	if in.Items != nil {
		out.Items = make([]FunctionRevision, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy creates a deep copy of FunctionRevisionList.
func (in *FunctionRevisionList) DeepCopy() *FunctionRevisionList {
	if in == nil {
		return nil
	}

	out := new(FunctionRevisionList)
	in.DeepCopyInto(out)

	return out
}

// DeepCopyObject implements runtime.Object interface.
func (in *FunctionRevisionList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}

	return nil
}

// addPackageTypesToScheme registers the package custom resources with the provided scheme.
//
//nolint:unparam // error return kept for consistency with Kubernetes scheme registration patterns
func addPackageTypesToScheme(scheme *runtime.Scheme) error {
	scheme.AddKnownTypes(
		packageGroupVersion,
		&Provider{},
		&ProviderList{},
		&Function{},
		&FunctionList{},
		&FunctionRevision{},
		&FunctionRevisionList{},
	)
	metav1.AddToGroupVersion(scheme, packageGroupVersion)

	return nil
}
