package accessbus

// DomainName identifies this domain for delegate registration.
const DomainName = "access"

// ActionResolved is raised after every access resolution, grant or denial.
const ActionResolved = "resolved"
